package contracts

import "context"

// SnapshotProvider supplies market snapshots for a token.
// Implementations return ErrSnapshotUnavailable (possibly wrapped) when no
// usable record exists.
// ⭐ SSOT: 마켓 스냅샷 조회 인터페이스
type SnapshotProvider interface {
	Snapshot(ctx context.Context, mint string) (*MarketSnapshot, error)
}

// TokenInfoProvider supplies display metadata for a token
type TokenInfoProvider interface {
	TokenInfo(ctx context.Context, mint string) (*TokenInfo, error)
}

// ScanRepository persists scan reports
// ⭐ SSOT: 스캔 결과 저장 인터페이스
type ScanRepository interface {
	Save(ctx context.Context, report *ScanReport) error
	ListByMint(ctx context.Context, mint string, limit int) ([]ScanReport, error)
}
