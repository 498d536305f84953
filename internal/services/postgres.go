package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/asset-hive/asset-service/internal/models"
	_ "github.com/lib/pq"
)

// PostgresStorage handles PostgreSQL operations
type PostgresStorage struct {
	db *sql.DB
}

var postgresInstance *PostgresStorage

// InitializePostgres sets up PostgreSQL as the metadata store
func InitializePostgres(connectionString string) error {
	pgStorage := &PostgresStorage{}
	if err := pgStorage.Connect(connectionString); err != nil {
		return err
	}
	postgresInstance = pgStorage
	SetMetadataStore(pgStorage)
	return nil
}

// Connect establishes connection to PostgreSQL
func (p *PostgresStorage) Connect(connectionString string) error {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %v", err)
	}

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %v", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	p.db = db

	// Create tables
	if err := p.createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %v", err)
	}

	log.Println("Connected to PostgreSQL successfully")
	return nil
}

func (p *PostgresStorage) createTables() error {
	query := `
    CREATE TABLE IF NOT EXISTS uploads (
        id SERIAL PRIMARY KEY,
        filename VARCHAR(255) NOT NULL,
        blob_key VARCHAR(255) NOT NULL UNIQUE,
        uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        metadata TEXT NOT NULL DEFAULT '',
        tags TEXT NOT NULL DEFAULT ''
    );
    `
	if _, err := p.db.Exec(query); err != nil {
		return err
	}

	// Declared in the schema but has no reachable handler.
	postsQuery := `
    CREATE TABLE IF NOT EXISTS posts (
        id SERIAL PRIMARY KEY,
        title VARCHAR(255) NOT NULL,
        content TEXT NOT NULL DEFAULT ''
    );
    `
	if _, err := p.db.Exec(postsQuery); err != nil {
		return err
	}

	// Indexes
	indexQuery := `
    CREATE INDEX IF NOT EXISTS idx_uploads_filename ON uploads(filename);
    CREATE INDEX IF NOT EXISTS idx_uploads_uploaded_at ON uploads(uploaded_at DESC);
    `
	_, err := p.db.Exec(indexQuery)
	return err
}

func (p *PostgresStorage) SaveUploadRecord(rec models.UploadRecord) error {
	query := `
        INSERT INTO uploads (filename, blob_key, uploaded_at, metadata, tags)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := p.db.Exec(query, rec.Filename, rec.BlobKey, rec.UploadedAt, rec.Metadata, rec.Tags)
	if err != nil {
		log.Printf("Error saving upload record: %v", err)
	}
	return err
}

func (p *PostgresStorage) GetUploadByKey(blobKey string) (models.UploadRecord, bool) {
	query := `
        SELECT id, filename, blob_key, uploaded_at, metadata, tags
        FROM uploads
        WHERE blob_key = $1
    `
	var rec models.UploadRecord
	err := p.db.QueryRow(query, blobKey).Scan(
		&rec.ID,
		&rec.Filename,
		&rec.BlobKey,
		&rec.UploadedAt,
		&rec.Metadata,
		&rec.Tags,
	)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("Error looking up upload by key: %v", err)
		}
		return models.UploadRecord{}, false
	}
	return rec, true
}

// SearchUploadsByFilename matches a case-insensitive substring against the
// filename column. Results come back in ascending id order, which is this
// store's documented stable order.
func (p *PostgresStorage) SearchUploadsByFilename(query string, limit int) ([]models.UploadRecord, error) {
	rows, err := p.db.Query(`
        SELECT id, filename, blob_key, uploaded_at, metadata, tags
        FROM uploads
        WHERE filename ILIKE $1
        ORDER BY id ASC
        LIMIT $2
    `, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUploadRows(rows)
}

func (p *PostgresStorage) UpdateUploadTags(blobKey, tags string) (int64, error) {
	result, err := p.db.Exec(`UPDATE uploads SET tags = $1 WHERE blob_key = $2`, tags, blobKey)
	if err != nil {
		return 0, err
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}

func (p *PostgresStorage) UpdateUploadMetadata(blobKey, metadata string) error {
	_, err := p.db.Exec(`UPDATE uploads SET metadata = $1 WHERE blob_key = $2`, metadata, blobKey)
	return err
}

func (p *PostgresStorage) GetRecentUploads(limit int) ([]models.UploadRecord, error) {
	rows, err := p.db.Query(`
        SELECT id, filename, blob_key, uploaded_at, metadata, tags
        FROM uploads
        ORDER BY id DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUploadRows(rows)
}

func (p *PostgresStorage) GetUploadStats() (models.UploadStats, error) {
	var stats models.UploadStats
	err := p.db.QueryRow(`
        SELECT COUNT(*), COALESCE(MAX(uploaded_at), NOW())
        FROM uploads
    `).Scan(&stats.TotalUploads, &stats.LatestUpload)
	if err != nil {
		log.Printf("Error getting upload stats: %v", err)
		return models.UploadStats{}, err
	}
	return stats, nil
}

func scanUploadRows(rows *sql.Rows) ([]models.UploadRecord, error) {
	var records []models.UploadRecord
	for rows.Next() {
		var rec models.UploadRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Filename,
			&rec.BlobKey,
			&rec.UploadedAt,
			&rec.Metadata,
			&rec.Tags,
		); err != nil {
			log.Printf("Error scanning row: %v", err)
			continue
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
