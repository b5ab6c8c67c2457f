package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBConfig конфигурация подключения к БД
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// LettersDB обертка для работы с базой истории генерации писем.
type LettersDB struct {
	conn *sql.DB
}

// GenerationSession одна обработка пары загруженных файлов.
type GenerationSession struct {
	ID            int64     `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	ReportingFile string    `json:"reporting_file"`
	RegistryFile  string    `json:"registry_file"`
	LettersCount  int       `json:"letters_count"`
	Status        string    `json:"status"`
}

// GeneratedLetter запись о сформированном письме.
type GeneratedLetter struct {
	ID           int64  `json:"id"`
	SessionID    int64  `json:"session_id"`
	OrderNumber  string `json:"order_number"`
	Contractor   string `json:"contractor"`
	ShortName    string `json:"short_name"`
	TotalAmount  string `json:"total_amount"`
	TotalPenalty string `json:"total_penalty"`
	Positions    int    `json:"positions"`
	Category     string `json:"category"`
	LetterFile   string `json:"letter_file"`
	AppendixFile string `json:"appendix_file"`
}

// NewLettersDB открывает базу истории генерации и применяет миграции.
func NewLettersDB(dbPath string, config DBConfig) (*LettersDB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &LettersDB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Close закрывает подключение к базе.
func (db *LettersDB) Close() error {
	return db.conn.Close()
}

func (db *LettersDB) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS generation_sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			reporting_file TEXT NOT NULL,
			registry_file TEXT NOT NULL,
			letters_count INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'completed'
		)`,
		`CREATE TABLE IF NOT EXISTS generated_letters (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL REFERENCES generation_sessions(id),
			order_number TEXT NOT NULL,
			contractor TEXT NOT NULL,
			short_name TEXT NOT NULL,
			total_amount TEXT NOT NULL,
			total_penalty TEXT NOT NULL,
			positions INTEGER NOT NULL,
			category TEXT NOT NULL,
			letter_file TEXT NOT NULL,
			appendix_file TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generated_letters_session
			ON generated_letters(session_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveSession сохраняет сессию генерации и возвращает ее идентификатор.
func (db *LettersDB) SaveSession(session GenerationSession) (int64, error) {
	result, err := db.conn.Exec(`
		INSERT INTO generation_sessions (started_at, reporting_file, registry_file, letters_count, status)
		VALUES (?, ?, ?, ?, ?)
	`, session.StartedAt.UTC().Format(time.RFC3339), session.ReportingFile, session.RegistryFile,
		session.LettersCount, session.Status)
	if err != nil {
		return 0, fmt.Errorf("failed to save session: %w", err)
	}

	return result.LastInsertId()
}

// SaveLetter сохраняет запись о сформированном письме.
func (db *LettersDB) SaveLetter(letter GeneratedLetter) error {
	_, err := db.conn.Exec(`
		INSERT INTO generated_letters
			(session_id, order_number, contractor, short_name, total_amount, total_penalty,
			 positions, category, letter_file, appendix_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, letter.SessionID, letter.OrderNumber, letter.Contractor, letter.ShortName,
		letter.TotalAmount, letter.TotalPenalty, letter.Positions, letter.Category,
		letter.LetterFile, letter.AppendixFile)
	if err != nil {
		return fmt.Errorf("failed to save letter: %w", err)
	}

	return nil
}

// ListSessions возвращает последние сессии генерации, новые первыми.
func (db *LettersDB) ListSessions(limit int) ([]GenerationSession, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(`
		SELECT id, started_at, reporting_file, registry_file, letters_count, status
		FROM generation_sessions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []GenerationSession{}
	for rows.Next() {
		var session GenerationSession
		var startedAt string
		if err := rows.Scan(&session.ID, &startedAt, &session.ReportingFile,
			&session.RegistryFile, &session.LettersCount, &session.Status); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, startedAt); err == nil {
			session.StartedAt = ts
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// ListLetters возвращает письма одной сессии.
func (db *LettersDB) ListLetters(sessionID int64) ([]GeneratedLetter, error) {
	rows, err := db.conn.Query(`
		SELECT id, session_id, order_number, contractor, short_name, total_amount,
		       total_penalty, positions, category, letter_file, appendix_file
		FROM generated_letters
		WHERE session_id = ?
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query letters: %w", err)
	}
	defer rows.Close()

	lettersList := []GeneratedLetter{}
	for rows.Next() {
		var letter GeneratedLetter
		if err := rows.Scan(&letter.ID, &letter.SessionID, &letter.OrderNumber,
			&letter.Contractor, &letter.ShortName, &letter.TotalAmount, &letter.TotalPenalty,
			&letter.Positions, &letter.Category, &letter.LetterFile, &letter.AppendixFile); err != nil {
			return nil, fmt.Errorf("failed to scan letter: %w", err)
		}
		lettersList = append(lettersList, letter)
	}

	return lettersList, rows.Err()
}

// GetStats возвращает сводную статистику по истории генерации.
func (db *LettersDB) GetStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var sessions int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM generation_sessions").Scan(&sessions); err != nil {
		return nil, err
	}
	stats["sessions"] = sessions

	var lettersTotal int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM generated_letters").Scan(&lettersTotal); err != nil {
		return nil, err
	}
	stats["letters_total"] = lettersTotal

	var lastStarted sql.NullString
	if err := db.conn.QueryRow("SELECT MAX(started_at) FROM generation_sessions").Scan(&lastStarted); err != nil {
		return nil, err
	}
	if lastStarted.Valid {
		stats["last_session_at"] = lastStarted.String
	}

	return stats, nil
}
