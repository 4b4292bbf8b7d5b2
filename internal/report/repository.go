package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/midas/internal/contracts"
)

// Repository 리포트 저장소
// 엔벨로프 전체를 JSONB로 보관하고, 조회 축(금속/추세/시각)만 컬럼으로 복제
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository 새 저장소 생성
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Save 리포트 저장
func (r *Repository) Save(ctx context.Context, report *contracts.Report) (int64, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}

	query := `
		INSERT INTO midas.reports (metal, trend, confidence, generated_at, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err = r.pool.QueryRow(ctx, query,
		report.Metal, string(report.Prediction.Trend),
		report.Prediction.Confidence, report.Timestamp, payload,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}

	return id, nil
}

// ListRecent 최신순 리포트 조회
func (r *Repository) ListRecent(ctx context.Context, metal string, limit int) ([]contracts.Report, error) {
	query := `
		SELECT id, payload
		FROM midas.reports
		WHERE metal = $1
		ORDER BY generated_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, metal, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []contracts.Report
	for rows.Next() {
		var (
			id      int64
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}

		var report contracts.Report
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, fmt.Errorf("unmarshal report %d: %w", id, err)
		}
		report.ID = id
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// RecentRecords 추세 분석용 최소 레코드를 최신순으로 조회
// 엔벨로프 복원 없이 인덱스 컬럼만 읽음
func (r *Repository) RecentRecords(ctx context.Context, metal string, limit int) ([]contracts.HistoricalRecord, error) {
	query := `
		SELECT trend, confidence
		FROM midas.reports
		WHERE metal = $1
		ORDER BY generated_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, metal, limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []contracts.HistoricalRecord
	for rows.Next() {
		var (
			trend      string
			confidence float64
		)
		if err := rows.Scan(&trend, &confidence); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, contracts.HistoricalRecord{
			Trend:      contracts.Trend(trend),
			Confidence: confidence,
		})
	}

	return records, rows.Err()
}

// Prune 보존 기한이 지난 리포트 삭제, 삭제 건수 반환
func (r *Repository) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM midas.reports WHERE generated_at < $1`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("prune reports: %w", err)
	}
	return tag.RowsAffected(), nil
}
