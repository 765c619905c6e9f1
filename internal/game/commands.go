package game

import (
	"fmt"
	"strconv"
	"strings"
)

type CommandResult struct {
	Handled         bool    `json:"handled"`
	Message         string  `json:"message"`
	SecondsAdvanced float64 `json:"seconds_advanced"`
}

const commandHelp = "Commands: look, status, chop, take, drop, deposit, use, go <n|s|e|w> [distance], wait [seconds], help."

// ExecuteCommand runs one text command against the world. Commands that take
// in-game time advance the spawner by the same amount.
func (w *World) ExecuteCommand(raw string) CommandResult {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) == 0 {
		return CommandResult{Handled: false}
	}

	switch fields[0] {
	case "help", "commands":
		return CommandResult{Handled: true, Message: commandHelp}
	case "look":
		return CommandResult{Handled: true, Message: w.describeSurroundings()}
	case "status":
		return CommandResult{Handled: true, Message: w.describeStatus()}
	case "chop":
		return w.executeChopCommand()
	case "take":
		return w.executeCarryCommand(w.carrier.PickUp(w.player, w.logs), "You shoulder a log.", "No logs within reach.")
	case "drop":
		return w.executeCarryCommand(w.carrier.Drop(w.player, w.logs), "You drop the log.", "You are not carrying anything.")
	case "deposit":
		if w.carrier.Deposit(w.player, w.logs, &w.dock) {
			w.logDeposit()
			return CommandResult{Handled: true, Message: w.lastMessage()}
		}
		return CommandResult{Handled: true, Message: "You need to carry a log to the dock first."}
	case "use", "interact":
		w.Interact()
		return CommandResult{Handled: true, Message: w.lastMessage()}
	case "go":
		return w.executeGoCommand(fields[1:])
	case "wait":
		return w.executeWaitCommand(fields[1:])
	default:
		return CommandResult{Handled: false, Message: fmt.Sprintf("Unknown command %q. %s", fields[0], commandHelp)}
	}
}

func (w *World) executeChopCommand() CommandResult {
	tree, ok := w.NearestTree()
	if !ok {
		return CommandResult{Handled: true, Message: "No tree within reach. Walk closer first."}
	}
	id := tree.ID
	hold := float64(w.cfg.Chop.HoldTime)
	w.Step(hold, Input{Chop: true})
	if _, standing := w.trees[id]; standing {
		return CommandResult{Handled: true, SecondsAdvanced: hold, Message: "The tree still stands."}
	}
	return CommandResult{Handled: true, SecondsAdvanced: hold, Message: w.lastMessage()}
}

func (w *World) executeCarryCommand(ok bool, success, failure string) CommandResult {
	if !ok {
		return CommandResult{Handled: true, Message: failure}
	}
	w.logf("%s", success)
	return CommandResult{Handled: true, Message: success}
}

func (w *World) executeGoCommand(fields []string) CommandResult {
	if len(fields) == 0 {
		return CommandResult{Handled: true, Message: "Usage: go <north|south|east|west|n|s|e|w> [distance]"}
	}
	dir, ok := directionVector(fields[0])
	if !ok {
		return CommandResult{Handled: true, Message: "Direction must be north/south/east/west."}
	}
	distance := 1.0
	if len(fields) > 1 {
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || !isFinite(v) || v <= 0 {
			return CommandResult{Handled: true, Message: "Distance must be a number > 0."}
		}
		distance = v
	}
	if w.cfg.PlayerSpeed <= 0 {
		return CommandResult{Handled: true, Message: "You cannot move."}
	}
	seconds := distance / w.cfg.PlayerSpeed
	w.Step(seconds, Input{Move: dir})
	return CommandResult{
		Handled:         true,
		SecondsAdvanced: seconds,
		Message:         fmt.Sprintf("You walk %s to (%.1f, %.1f).", fields[0], w.player.X, w.player.Y),
	}
}

func (w *World) executeWaitCommand(fields []string) CommandResult {
	seconds := 1.0
	if len(fields) > 0 {
		v, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "s"), 64)
		if err != nil || !isFinite(v) || v < 0 {
			return CommandResult{Handled: true, Message: "Wait time must be a number of seconds."}
		}
		seconds = v
	}
	w.Step(seconds, Input{})
	return CommandResult{Handled: true, SecondsAdvanced: seconds, Message: fmt.Sprintf("You wait %.0fs. %d trees stand.", seconds, w.spawner.Count())}
}

func (w *World) describeSurroundings() string {
	var parts []string
	if tree, ok := w.NearestTree(); ok {
		parts = append(parts, fmt.Sprintf("Tree %d is within reach.", tree.ID))
	} else {
		parts = append(parts, "No tree within reach.")
	}
	if l, ok := w.logs.Closest(w.player, w.cfg.Carry.PickupRange); ok {
		parts = append(parts, fmt.Sprintf("A log lies %.1f away.", Distance(l.Pos, w.player)))
	}
	d := Distance(w.player, w.dock.Pos)
	if d <= w.cfg.Carry.DockRange {
		parts = append(parts, "The dock is right here.")
	} else {
		parts = append(parts, fmt.Sprintf("The dock is %.1f away.", d))
	}
	return strings.Join(parts, " ")
}

func (w *World) describeStatus() string {
	carrying := "empty-handed"
	if _, ok := w.carrier.Carrying(); ok {
		carrying = "carrying a log"
	}
	return fmt.Sprintf("Position (%.1f, %.1f), %s. Trees %d/%d, blocked spots %d. Dock %d/%d planks.",
		w.player.X, w.player.Y, carrying,
		w.spawner.Count(), w.cfg.Spawner.Target, len(w.spawner.Blocked()),
		w.dock.PlanksPlaced, w.dock.PlanksNeeded)
}

func (w *World) lastMessage() string {
	if len(w.messages) == 0 {
		return ""
	}
	return w.messages[len(w.messages)-1]
}

// directionVector maps compass words to screen-space unit vectors (y grows south).
func directionVector(token string) (Vec2, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "n", "north":
		return Vec2{X: 0, Y: -1}, true
	case "s", "south":
		return Vec2{X: 0, Y: 1}, true
	case "e", "east":
		return Vec2{X: 1, Y: 0}, true
	case "w", "west":
		return Vec2{X: -1, Y: 0}, true
	default:
		return Vec2{}, false
	}
}
