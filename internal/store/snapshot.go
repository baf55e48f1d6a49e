package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openswim/swim-meets/internal/meeting"
)

// Snapshots persists live-meeting snapshots as JSON files, one per source
// profile, so consecutive CLI runs can be diffed for newly listed meets.
type Snapshots struct {
	dataDir string
}

// NewSnapshots creates snapshot storage rooted at dataDir, expanding a
// leading ~ and creating the directory if needed.
func NewSnapshots(dataDir string) (*Snapshots, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Snapshots{dataDir: dataDir}, nil
}

func (s *Snapshots) path(source string) string {
	if source == "" {
		return filepath.Join(s.dataDir, "snapshot.json")
	}
	return filepath.Join(s.dataDir, fmt.Sprintf("snapshot_%s.json", source))
}

// Load reads the snapshot for a source. A missing file yields an empty
// snapshot, not an error.
func (s *Snapshots) Load(source string) (*meeting.Snapshot, error) {
	data, err := os.ReadFile(s.path(source))
	if err != nil {
		if os.IsNotExist(err) {
			return meeting.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap meeting.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snap.Meetings == nil {
		snap.Meetings = make(map[string]*meeting.LiveMeeting)
	}
	return &snap, nil
}

// Save writes the snapshot for a source, stamping UpdatedAt.
func (s *Snapshots) Save(snap *meeting.Snapshot, source string, now time.Time) error {
	snap.UpdatedAt = now.UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(s.path(source), data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// SaveMeetings builds and saves a snapshot from a list of meetings.
func (s *Snapshots) SaveMeetings(meetings []*meeting.LiveMeeting, source string, now time.Time) error {
	snap := meeting.CreateSnapshot(meetings, now.UTC().Format(time.RFC3339))
	return s.Save(snap, source, now)
}
