package output

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/pdftranslate/internal/domain"
)

const createParagraphsTable = `
CREATE TABLE IF NOT EXISTS paragraphs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	source      TEXT NOT NULL,
	language    TEXT NOT NULL,
	page        INTEGER NOT NULL,
	idx         INTEGER NOT NULL,
	original    TEXT NOT NULL,
	translation TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_paragraphs_source ON paragraphs (source, language, page, idx);
`

// SQLiteExporter stores records in a SQLite database
type SQLiteExporter struct {
	path string
	now  func() time.Time
}

// NewSQLiteExporter creates an exporter writing to the database at path
func NewSQLiteExporter(path string) *SQLiteExporter {
	return &SQLiteExporter{path: path, now: time.Now}
}

// Export replaces the rows of source/language with records in one transaction
func (e *SQLiteExporter) Export(source, language string, records []domain.ParagraphRecord) error {
	db, err := sql.Open("sqlite3", e.path)
	if err != nil {
		return domain.NewIOError(e.path, "failed to open database", err)
	}
	defer db.Close()

	if _, err := db.Exec(createParagraphsTable); err != nil {
		return domain.NewIOError(e.path, "failed to create tables", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return domain.NewIOError(e.path, "failed to begin transaction", err)
	}
	defer tx.Rollback() // no-op after commit

	if _, err := tx.Exec(`DELETE FROM paragraphs WHERE source = ? AND language = ?`, source, language); err != nil {
		return domain.NewIOError(e.path, "failed to clear previous rows", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO paragraphs (source, language, page, idx, original, translation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return domain.NewIOError(e.path, "failed to prepare insert", err)
	}
	defer stmt.Close()

	createdAt := e.now().Unix()
	for _, r := range records {
		if _, err := stmt.Exec(source, language, r.Page, r.Index, r.Original, r.Translation, createdAt); err != nil {
			return domain.NewIOError(e.path, "failed to insert paragraph", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.NewIOError(e.path, "failed to commit transaction", err)
	}
	return nil
}

// Load returns the stored records of source/language in page order
func (e *SQLiteExporter) Load(source, language string) ([]domain.ParagraphRecord, error) {
	db, err := sql.Open("sqlite3", e.path)
	if err != nil {
		return nil, domain.NewIOError(e.path, "failed to open database", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT page, idx, original, translation FROM paragraphs
		WHERE source = ? AND language = ? ORDER BY page, idx`, source, language)
	if err != nil {
		return nil, domain.NewIOError(e.path, "failed to query paragraphs", err)
	}
	defer rows.Close()

	var records []domain.ParagraphRecord
	for rows.Next() {
		var r domain.ParagraphRecord
		if err := rows.Scan(&r.Page, &r.Index, &r.Original, &r.Translation); err != nil {
			return nil, domain.NewIOError(e.path, "failed to read paragraph", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewIOError(e.path, "failed to read paragraphs", err)
	}
	return records, nil
}
