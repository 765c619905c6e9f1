// Package inspect serves a live JSON view of the world over HTTP, with a few
// write routes for driving it from scripts.
package inspect

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/appengine-ltd/timberline/internal/game"
	"github.com/gorilla/mux"
)

type handler struct {
	session     *game.Session
	streamEvery time.Duration
}

// HealthReport is the body of GET /.
type HealthReport struct {
	Status string `json:"status"`
	Trees  int    `json:"trees"`
	Target int    `json:"target"`
}

// ErrorResponse reports an error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// TreeAction reports the outcome of a write on one tree.
type TreeAction struct {
	ID      game.TreeID `json:"id"`
	Action  string      `json:"action"`
	Removed bool        `json:"removed"`
}

type CommandRequest struct {
	Command string `json:"command"`
}

type StormRequest struct {
	Count int `json:"count"`
}

type StormReport struct {
	Uprooted []game.TreeID `json:"uprooted"`
}

func NewRouter(session *game.Session) *mux.Router {
	h := &handler{session: session, streamEvery: streamInterval}
	router := mux.NewRouter()
	router.HandleFunc("/", h.ReportHealth).Methods("GET")
	router.HandleFunc("/world", h.GetWorld).Methods("GET")
	router.HandleFunc("/trees", h.GetTrees).Methods("GET")
	router.HandleFunc("/spots", h.GetSpots).Methods("GET")
	router.HandleFunc("/logs", h.GetLogs).Methods("GET")
	router.HandleFunc("/messages", h.GetMessages).Methods("GET")
	router.HandleFunc("/trees/{treeID}/chop", h.ChopTree).Methods("POST")
	router.HandleFunc("/trees/{treeID}", h.RemoveTree).Methods("DELETE")
	router.HandleFunc("/storm", h.SendStorm).Methods("POST")
	router.HandleFunc("/commands", h.RunCommand).Methods("POST")
	router.HandleFunc("/stream", h.StreamWorld).Methods("GET")
	return router
}

func (h *handler) ReportHealth(w http.ResponseWriter, req *http.Request) {
	snap := h.session.Snapshot()
	sendJSON(w, HealthReport{Status: "ok", Trees: len(snap.Trees), Target: snap.Target})
}

func (h *handler) GetWorld(w http.ResponseWriter, req *http.Request) {
	sendJSON(w, h.session.Snapshot())
}

func (h *handler) GetTrees(w http.ResponseWriter, req *http.Request) {
	sendJSON(w, h.session.Snapshot().Trees)
}

// GetSpots lists blocked respawn spots with their remaining cooldown.
func (h *handler) GetSpots(w http.ResponseWriter, req *http.Request) {
	sendJSON(w, h.session.Snapshot().Blocked)
}

func (h *handler) GetLogs(w http.ResponseWriter, req *http.Request) {
	sendJSON(w, h.session.Snapshot().Logs)
}

func (h *handler) GetMessages(w http.ResponseWriter, req *http.Request) {
	sendJSON(w, h.session.Messages())
}

// ChopTree fells a tree as if the player had chopped it: a log drops and the
// spot is blocked for the cooldown.
func (h *handler) ChopTree(w http.ResponseWriter, req *http.Request) {
	id, err := getTreeID(req)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.session.ChopTree(id) {
		sendError(w, "no standing tree with that id", http.StatusNotFound)
		return
	}
	sendJSON(w, TreeAction{ID: id, Action: "chopped", Removed: true})
}

// RemoveTree destroys a tree without blocking its spot. Absent trees are not
// an error.
func (h *handler) RemoveTree(w http.ResponseWriter, req *http.Request) {
	id, err := getTreeID(req)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	removed := h.session.RemoveTree(id)
	sendJSON(w, TreeAction{ID: id, Action: "destroyed", Removed: removed})
}

// SendStorm uproots the oldest standing trees. Their spots are not blocked,
// so the spawner may refill them on the next tick.
func (h *handler) SendStorm(w http.ResponseWriter, req *http.Request) {
	var storm StormRequest
	if err := json.NewDecoder(req.Body).Decode(&storm); err != nil {
		log.Println(err)
		sendError(w, "error decoding request body as storm", http.StatusBadRequest)
		return
	}
	if storm.Count <= 0 {
		sendError(w, "must specify a positive count", http.StatusBadRequest)
		return
	}

	report := StormReport{Uprooted: []game.TreeID{}}
	for _, t := range h.session.Snapshot().Trees {
		if len(report.Uprooted) == storm.Count {
			break
		}
		if h.session.RemoveTree(t.ID) {
			report.Uprooted = append(report.Uprooted, t.ID)
		}
	}
	sendJSON(w, report)
}

func (h *handler) RunCommand(w http.ResponseWriter, req *http.Request) {
	var cmd CommandRequest
	if err := json.NewDecoder(req.Body).Decode(&cmd); err != nil {
		log.Println(err)
		sendError(w, "error decoding request body as command", http.StatusBadRequest)
		return
	}
	res := h.session.ExecuteCommand(cmd.Command)
	if !res.Handled {
		sendError(w, res.Message, http.StatusUnprocessableEntity)
		return
	}
	sendJSON(w, res)
}

func getTreeID(req *http.Request) (game.TreeID, error) {
	raw := mux.Vars(req)["treeID"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("path must include a valid, non-zero tree ID")
	}
	return game.TreeID(id), nil
}

func sendError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Message: msg}); err != nil {
		log.Println("inspect: write error response:", err)
	}
}

func sendJSON(w http.ResponseWriter, object any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(object); err != nil {
		log.Println("inspect: write response:", err)
	}
}
