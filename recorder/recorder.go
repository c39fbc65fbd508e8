// Package recorder persists captured DIS/C-DIS frames to an append-only
// SQLite log, per spec.md section 6.4: the core's interface to the
// recorder is a channel of PDU-and-timestamp events, read and committed
// by a background goroutine, with no bidirectional coupling back to the
// sender. Schema ownership lives entirely in migrations/*.sql, applied
// through golang-migrate the same way the teacher repo's internal/db
// package applies its own migrations.
package recorder

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dis-interop/cdis-gateway/internal/dis"
)

// Frame is one captured PDU, paired with the time it was observed and
// which side of the gateway it crossed on.
type Frame struct {
	Pdu       dis.Pdu
	Direction Direction
	Observed  time.Time
}

// Direction records which leg of the gateway produced a Frame, per
// spec.md section 6.4's "frames of captured PDUs" (the schema keeps
// inbound DIS traffic distinguishable from outbound C-DIS traffic).
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// DefaultQueueCapacity bounds the channel returned by Recorder.Frames;
// a slow disk degrades into dropped frames rather than blocking callers,
// mirroring the gateway's own broadcast-or-drop channel discipline.
const DefaultQueueCapacity = 256

// Recorder owns a SQLite connection and a single writer goroutine that
// drains Frame values sent on its input channel and commits each one as
// its own transaction.
type Recorder struct {
	db     *sql.DB
	frames chan Frame
	done   chan struct{}
}

// Open opens (creating if necessary) the SQLite database at path,
// applies the teacher's pragma set for WAL concurrency, and returns a
// Recorder ready to have Run started on it. It does not itself apply
// migrations; callers run MigrateUp first (see migrate.go), exactly as
// the teacher repo separates schema management from the open DB handle.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("recorder: open %s: %w", path, err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Recorder{
		db:     db,
		frames: make(chan Frame, DefaultQueueCapacity),
		done:   make(chan struct{}),
	}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("recorder: apply pragma %q: %w", pragma, err)
		}
	}
	return nil
}

// Frames returns the channel on which callers send captured frames. The
// channel is never read back from by the caller: per spec.md section
// 6.4 there is no bidirectional coupling between the core and the
// recorder.
func (r *Recorder) Frames() chan<- Frame {
	return r.frames
}

// Run drains Frames until the channel is closed, committing each one as
// an individual transaction. It returns when the channel closes, after
// which Close should be called to release the underlying connection.
func (r *Recorder) Run() {
	defer close(r.done)
	for frame := range r.frames {
		if err := r.commit(frame); err != nil {
			continue
		}
	}
}

func (r *Recorder) commit(frame Frame) error {
	wire, err := dis.SerializePdu(frame.Pdu)
	if err != nil {
		return fmt.Errorf("recorder: serialize frame: %w", err)
	}
	_, err = r.db.Exec(
		`INSERT INTO frames (observed_at, direction, pdu_type, raw_bytes) VALUES (?, ?, ?, ?)`,
		frame.Observed.UnixNano(),
		string(frame.Direction),
		int(frame.Pdu.Body.PduType()),
		wire,
	)
	return err
}

// Done returns a channel that closes once Run has drained Frames and
// returned, letting callers wait for in-flight commits before Close.
func (r *Recorder) Done() <-chan struct{} {
	return r.done
}

// Close releases the database handle; it does not close Frames.
// Callers should close the Frames channel, wait on Done, then call
// Close; closing the channel is the caller's responsibility since the
// Recorder does not own channel lifetime, only its own connection.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// DB exposes the underlying connection for admin routes and migrations.
func (r *Recorder) DB() *sql.DB {
	return r.db
}
