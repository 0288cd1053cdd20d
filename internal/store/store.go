// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/cognicare/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps SQLite access for screening data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			age INTEGER NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			emergency_contact TEXT NOT NULL,
			medical_history TEXT NOT NULL,
			baseline TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS assessments (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			score REAL NOT NULL,
			max_score REAL NOT NULL,
			duration_ms INTEGER NOT NULL,
			details TEXT,
			completed_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS risk_scores (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			confidence INTEGER NOT NULL,
			cognitive INTEGER NOT NULL,
			speech INTEGER NOT NULL,
			behavioral INTEGER NOT NULL,
			recommendations TEXT NOT NULL,
			generated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_user ON assessments(user_id, seq);`,
		`CREATE INDEX IF NOT EXISTS idx_risk_scores_user ON risk_scores(user_id, seq);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveProfile inserts or replaces a profile. UpdatedAt is set to now and
// CreatedAt is filled in when zero.
func (s *Store) SaveProfile(ctx context.Context, p model.UserProfile) (model.UserProfile, error) {
	if p.ID == "" {
		return model.UserProfile{}, fmt.Errorf("profile id is empty")
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.MedicalHistory == nil {
		p.MedicalHistory = []string{}
	}

	contact, err := json.Marshal(p.EmergencyContact)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to encode emergency contact: %w", err)
	}
	history, err := json.Marshal(p.MedicalHistory)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to encode medical history: %w", err)
	}
	var baseline sql.NullString
	if p.Baseline != nil {
		raw, err := json.Marshal(p.Baseline)
		if err != nil {
			return model.UserProfile{}, fmt.Errorf("failed to encode baseline: %w", err)
		}
		baseline = sql.NullString{String: string(raw), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name, age, email, phone, emergency_contact, medical_history, baseline, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			age = excluded.age,
			email = excluded.email,
			phone = excluded.phone,
			emergency_contact = excluded.emergency_contact,
			medical_history = excluded.medical_history,
			baseline = excluded.baseline,
			updated_at = excluded.updated_at`,
		p.ID,
		p.Name,
		p.Age,
		p.Email,
		p.Phone,
		string(contact),
		string(history),
		baseline,
		p.CreatedAt.UTC().Format(timeLayout),
		p.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return model.UserProfile{}, err
	}
	return p, nil
}

const profileColumns = `id, name, age, email, phone, emergency_contact, medical_history, baseline, created_at, updated_at`

// GetProfile returns the profile for userID or ErrNotFound.
func (s *Store) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, userID)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProfiles returns every profile ordered by creation time.
func (s *Store) ListProfiles(ctx context.Context) ([]model.UserProfile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(sc scanner) (*model.UserProfile, error) {
	var p model.UserProfile
	var contact, history, createdAt, updatedAt string
	var baseline sql.NullString
	if err := sc.Scan(&p.ID, &p.Name, &p.Age, &p.Email, &p.Phone, &contact, &history, &baseline, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(contact), &p.EmergencyContact); err != nil {
		return nil, fmt.Errorf("failed to decode emergency contact: %w", err)
	}
	if err := json.Unmarshal([]byte(history), &p.MedicalHistory); err != nil {
		return nil, fmt.Errorf("failed to decode medical history: %w", err)
	}
	if baseline.Valid {
		var b model.Baseline
		if err := json.Unmarshal([]byte(baseline.String), &b); err != nil {
			return nil, fmt.Errorf("failed to decode baseline: %w", err)
		}
		p.Baseline = &b
	}
	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// InsertAssessment appends an assessment and returns it with its ID set.
func (s *Store) InsertAssessment(ctx context.Context, a model.AssessmentResult) (model.AssessmentResult, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	var details sql.NullString
	if a.Details != nil {
		raw, err := json.Marshal(a.Details)
		if err != nil {
			return model.AssessmentResult{}, fmt.Errorf("failed to encode details: %w", err)
		}
		details = sql.NullString{String: string(raw), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, user_id, type, score, max_score, duration_ms, details, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.UserID,
		string(a.Type),
		a.Score,
		a.MaxScore,
		a.DurationMs,
		details,
		a.CompletedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return model.AssessmentResult{}, err
	}
	return a, nil
}

// ListAssessments returns a user's assessments in append order.
func (s *Store) ListAssessments(ctx context.Context, userID string) ([]model.AssessmentResult, error) {
	return s.QueryAssessments(ctx, model.DashboardConfig{UserID: userID})
}

// QueryAssessments returns assessments filtered by dashboard config, in append
// order. Last keeps only the newest N rows.
func (s *Store) QueryAssessments(ctx context.Context, cfg model.DashboardConfig) ([]model.AssessmentResult, error) {
	clauses := []string{"user_id = ?"}
	args := []any{cfg.UserID}
	if cfg.Since != nil {
		clauses = append(clauses, "completed_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	order := "ASC"
	limit := ""
	if cfg.Last > 0 {
		order = "DESC"
		limit = "LIMIT ?"
		args = append(args, cfg.Last)
	}
	query := fmt.Sprintf(`SELECT id, user_id, type, score, max_score, duration_ms, details, completed_at
		FROM assessments
		WHERE %s
		ORDER BY seq %s %s`, strings.Join(clauses, " AND "), order, limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.AssessmentResult
	for rows.Next() {
		var a model.AssessmentResult
		var typ, completedAt string
		var details sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &typ, &a.Score, &a.MaxScore, &a.DurationMs, &details, &completedAt); err != nil {
			return nil, err
		}
		a.Type = model.AssessmentType(typ)
		if details.Valid {
			d, err := model.DecodeDetails(a.Type, []byte(details.String))
			if err != nil {
				return nil, err
			}
			a.Details = d
		}
		parsed, err := time.Parse(time.RFC3339Nano, completedAt)
		if err != nil {
			return nil, err
		}
		a.CompletedAt = parsed
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 {
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}
	return result, nil
}

// InsertRiskScore appends a risk score and returns it with its ID set.
func (s *Store) InsertRiskScore(ctx context.Context, r model.RiskScore) (model.RiskScore, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
	recs, err := json.Marshal(r.Recommendations)
	if err != nil {
		return model.RiskScore{}, fmt.Errorf("failed to encode recommendations: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO risk_scores (id, user_id, score, confidence, cognitive, speech, behavioral, recommendations, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.UserID,
		r.Score,
		r.Confidence,
		r.Factors.Cognitive,
		r.Factors.Speech,
		r.Factors.Behavioral,
		string(recs),
		r.GeneratedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return model.RiskScore{}, err
	}
	return r, nil
}

// ListRiskScores returns a user's risk scores in append order.
func (s *Store) ListRiskScores(ctx context.Context, userID string) ([]model.RiskScore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, score, confidence, cognitive, speech, behavioral, recommendations, generated_at
		 FROM risk_scores WHERE user_id = ? ORDER BY seq ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.RiskScore
	for rows.Next() {
		r, err := scanRiskScore(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// LatestRiskScore returns the most recently appended score or ErrNotFound.
func (s *Store) LatestRiskScore(ctx context.Context, userID string) (*model.RiskScore, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, score, confidence, cognitive, speech, behavioral, recommendations, generated_at
		 FROM risk_scores WHERE user_id = ? ORDER BY seq DESC LIMIT 1`, userID)
	r, err := scanRiskScore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func scanRiskScore(sc scanner) (*model.RiskScore, error) {
	var r model.RiskScore
	var recs, generatedAt string
	if err := sc.Scan(&r.ID, &r.UserID, &r.Score, &r.Confidence, &r.Factors.Cognitive, &r.Factors.Speech, &r.Factors.Behavioral, &recs, &generatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(recs), &r.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, generatedAt)
	if err != nil {
		return nil, err
	}
	r.GeneratedAt = parsed
	return &r, nil
}

// ClearUser deletes every record of a user in one transaction.
func (s *Store) ClearUser(ctx context.Context, userID string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmts := []string{
		`DELETE FROM assessments WHERE user_id = ?`,
		`DELETE FROM risk_scores WHERE user_id = ?`,
		`DELETE FROM profiles WHERE id = ?`,
	}
	for _, stmt := range stmts {
		if _, err = tx.ExecContext(ctx, stmt, userID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
