package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/learnhub/internal/db"
	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/google/uuid"
)

// SQLiteConversationRepo implements ConversationRepo using a SQLite database.
// Create writes the log row and its action rows with separate statements, so
// callers that need atomicity run it inside db.UnitOfWork.WithinTx.
type SQLiteConversationRepo struct {
	db db.DBTX
}

// NewSQLiteConversationRepo creates a new SQLiteConversationRepo.
func NewSQLiteConversationRepo(db db.DBTX) *SQLiteConversationRepo {
	return &SQLiteConversationRepo{db: db}
}

const conversationColumns = `id, created_at, user_email, user_name, user_prompt, prompt_style,
	courses_count, user_courses_count, cart_items_count, tasks_count,
	model_response, status, error`

func (r *SQLiteConversationRepo) Create(ctx context.Context, l *domain.ConversationLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	if l.Status == "" {
		l.Status = domain.StatusSuccess
	}
	if l.PromptStyle == "" {
		l.PromptStyle = domain.PromptImproved
	}

	query := `INSERT INTO conversation_logs (` + conversationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.Timestamp.UTC().Format(timeLayout),
		l.UserEmail,
		l.UserName,
		l.UserPrompt,
		string(l.PromptStyle),
		l.Summary.CoursesCount,
		l.Summary.UserCoursesCount,
		l.Summary.CartItemsCount,
		l.Summary.TasksCount,
		l.ModelResponse,
		string(l.Status),
		nullableString(l.Error),
	)
	if err != nil {
		return fmt.Errorf("inserting conversation log: %w", err)
	}

	for i := range l.Actions {
		a := &l.Actions[i]
		a.Seq = i
		payload := string(a.Payload)
		if payload == "" {
			payload = "{}"
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO conversation_actions (log_id, seq, type, executed, payload) VALUES (?, ?, ?, ?, ?)`,
			l.ID, a.Seq, a.Type, boolToInt(a.Executed), payload,
		)
		if err != nil {
			return fmt.Errorf("inserting conversation action %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteConversationRepo) GetByID(ctx context.Context, id string) (*domain.ConversationLog, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversation_logs WHERE id = ?`
	l, err := scanConversation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachActions(ctx, []*domain.ConversationLog{l}); err != nil {
		return nil, err
	}
	return l, nil
}

// List returns logs newest first.
func (r *SQLiteConversationRepo) List(ctx context.Context, f ConversationFilter) ([]*domain.ConversationLog, error) {
	var (
		where []string
		args  []interface{}
	)
	if f.UserEmail != "" {
		where = append(where, "user_email = ?")
		args = append(args, f.UserEmail)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT ` + conversationColumns + ` FROM conversation_logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing conversation logs: %w", err)
	}
	logs, err := scanConversations(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	// Action rows are loaded after the log cursor is closed; an in-memory
	// database runs on a single connection.
	if err := r.attachActions(ctx, logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *SQLiteConversationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM conversation_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting conversation log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting conversation log: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("conversation log %s: %w", id, ErrNotFound)
	}
	return nil
}

// attachActions loads the action rows for every log in one query.
func (r *SQLiteConversationRepo) attachActions(ctx context.Context, logs []*domain.ConversationLog) error {
	if len(logs) == 0 {
		return nil
	}
	byID := make(map[string]*domain.ConversationLog, len(logs))
	placeholders := make([]string, 0, len(logs))
	args := make([]interface{}, 0, len(logs))
	for _, l := range logs {
		byID[l.ID] = l
		placeholders = append(placeholders, "?")
		args = append(args, l.ID)
	}

	query := `SELECT log_id, seq, type, executed, payload FROM conversation_actions
		WHERE log_id IN (` + strings.Join(placeholders, ",") + `) ORDER BY log_id, seq`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("listing conversation actions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			logID, payload string
			executed       int
			a              domain.ConversationAction
		)
		if err := rows.Scan(&logID, &a.Seq, &a.Type, &executed, &payload); err != nil {
			return fmt.Errorf("scanning conversation action: %w", err)
		}
		a.Executed = intToBool(executed)
		a.Payload = []byte(payload)
		if l, ok := byID[logID]; ok {
			l.Actions = append(l.Actions, a)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConversationRow(s rowScanner) (*domain.ConversationLog, error) {
	var (
		l                        domain.ConversationLog
		createdAt, style, status string
		errMsg                   sql.NullString
	)
	err := s.Scan(
		&l.ID, &createdAt, &l.UserEmail, &l.UserName, &l.UserPrompt, &style,
		&l.Summary.CoursesCount, &l.Summary.UserCoursesCount,
		&l.Summary.CartItemsCount, &l.Summary.TasksCount,
		&l.ModelResponse, &status, &errMsg,
	)
	if err != nil {
		return nil, err
	}
	l.Timestamp = parseTime(createdAt)
	l.PromptStyle = domain.PromptStyle(style)
	l.Status = domain.ConversationStatus(status)
	l.Error = stringOrEmpty(errMsg)
	return &l, nil
}

// scanConversation scans a single log from a *sql.Row.
func scanConversation(row *sql.Row) (*domain.ConversationLog, error) {
	l, err := scanConversationRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("conversation log: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning conversation log: %w", err)
	}
	return l, nil
}

// scanConversations scans multiple logs from *sql.Rows.
func scanConversations(rows *sql.Rows) ([]*domain.ConversationLog, error) {
	logs := []*domain.ConversationLog{}
	for rows.Next() {
		l, err := scanConversationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning conversation log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
