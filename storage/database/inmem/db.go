package inmemdb

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/berrycrepe/choco-chip/core/problem"
	"github.com/berrycrepe/choco-chip/core/user"
)

// StatusAccepted is the status of a successful submission.
const StatusAccepted = "ACCEPTED"

type (
	// DB is an in-memory store for the repositories of this package.
	DB struct {
		sync.RWMutex
		users       map[string]*user.User // keyed by lower-cased id
		problems    map[int]*problem.DetailRow
		submissions []Submission
	}

	Submission struct {
		ID        string
		UserID    string
		ProblemID int // problem number
		Status    string
		CreatedAt time.Time
	}
)

func Open() *DB {
	return &DB{
		users:    make(map[string]*user.User),
		problems: make(map[int]*problem.DetailRow),
	}
}

// AddProblem inserts or replaces a catalog entry. A missing DBID is generated.
func (db *DB) AddProblem(p problem.DetailRow) {
	db.Lock()
	defer db.Unlock()

	if p.DBID == "" {
		p.DBID = uuid.NewString()
	}
	db.problems[p.Number] = &p
}

func (db *DB) AddSubmission(userID string, problemNumber int, status string, createdAt time.Time) Submission {
	db.Lock()
	defer db.Unlock()

	sub := Submission{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProblemID: problemNumber,
		Status:    status,
		CreatedAt: createdAt.UTC(),
	}
	db.submissions = append(db.submissions, sub)
	return sub
}

// Reset removes every row.
func (db *DB) Reset() {
	db.Lock()
	defer db.Unlock()

	db.users = make(map[string]*user.User)
	db.problems = make(map[int]*problem.DetailRow)
	db.submissions = nil
}

// accepted returns the accepted submissions of userID, or of everyone when userID is empty.
// Callers must hold the read lock.
func (db *DB) accepted(userID string) []Submission {
	var subs []Submission
	for _, s := range db.submissions {
		if s.Status == StatusAccepted && (userID == "" || s.UserID == userID) {
			subs = append(subs, s)
		}
	}
	return subs
}

func lower(s string) string {
	return strings.ToLower(s)
}
