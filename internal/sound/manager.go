package sound

import (
	"sync"

	"github.com/gopxl/beep"
)

// Manager mixes cues onto the speaker. Until Initialize succeeds every Play
// is a no-op, so callers never need to check whether audio is available.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewManager() *Manager {
	return &Manager{mixer: &beep.Mixer{}}
}

func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := openSpeaker(m.mixer); err != nil {
		return err
	}
	m.initialized = true
	return nil
}

func (m *Manager) Play(cues ...Cue) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	for _, cue := range cues {
		m.mixer.Add(streamerFor(cue))
	}
}

func (m *Manager) Cleanup() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.mixer.Clear()
	m.initialized = false
}
