package state

import "sync"

type Phase int

const (
	BOOTING Phase = iota
	RUNNING
	DEGENERATE
	STOPPED
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case RUNNING:
		return "running"
	case DEGENERATE:
		return "degenerate"
	case STOPPED:
		return "stopped"
	default:
		return "unknown"
	}
}

// DisplayInfo is the presentation state published once per frame.
type DisplayInfo struct {
	VirtualWidth  int    `json:"virtualWidth"`
	VirtualHeight int    `json:"virtualHeight"`
	DisplayWidth  int    `json:"displayWidth"`
	DisplayHeight int    `json:"displayHeight"`
	Scale         int    `json:"scale"`
	OffsetX       int    `json:"offsetX"`
	OffsetY       int    `json:"offsetY"`
	QuadX         int    `json:"quadX"`
	QuadY         int    `json:"quadY"`
	QuadWidth     int    `json:"quadWidth"`
	QuadHeight    int    `json:"quadHeight"`
	Evaluations   uint64 `json:"evaluations"`
	Recreations   uint64 `json:"recreations"`
	Frames        uint64 `json:"frames"`
	Effect        string `json:"effect"`
	EffectActive  bool   `json:"effectActive"`
}

type State struct {
	Phase     Phase
	Display   DisplayInfo
	StatusURL string
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

// UpdateDisplay stores info and moves between RUNNING and DEGENERATE
// according to the scale. BOOTING and STOPPED are left alone.
func (store *Store) UpdateDisplay(info DisplayInfo) {
	store.mu.Lock()
	store.state.Display = info
	switch store.state.Phase {
	case RUNNING, DEGENERATE:
		if info.Scale == 0 {
			store.state.Phase = DEGENERATE
		} else {
			store.state.Phase = RUNNING
		}
	}
	store.mu.Unlock()
}

func (store *Store) SetStatusURL(url string) {
	store.mu.Lock()
	store.state.StatusURL = url
	store.mu.Unlock()
}
