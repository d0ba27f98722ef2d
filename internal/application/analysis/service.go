package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/glowmance/glowmance-backend/internal/application"
	appproducts "github.com/glowmance/glowmance-backend/internal/application/products"
	domain "github.com/glowmance/glowmance-backend/internal/domain/analysis"
	"github.com/glowmance/glowmance-backend/internal/domain/faults"
	domainproducts "github.com/glowmance/glowmance-backend/internal/domain/products"
)

// ErrImageRequired untuk input error: request tanpa image ditolak
// sebelum ada side effect apa pun.
var ErrImageRequired = errors.New("image file is required")

// Gateway port ke classification gateway; implementasinya tidak pernah
// mengembalikan error (fallback degraded).
type Gateway interface {
	Classify(ctx context.Context, image []byte, filename string) *domain.Classification
}

// Resolver port ke recommendation resolver
type Resolver interface {
	Resolve(ctx context.Context, skinType domain.SkinType, condition domain.Condition, limit int) ([]domainproducts.Product, error)
}

// Service implements use-cases untuk analysis pipeline.
// Thread-safe: tidak ada shared mutable state di luar pool dan cache.
type Service struct {
	Repo     domain.Repository
	Mirror   domain.Mirror
	Images   domain.ImageStore
	Gateway  Gateway
	Resolver Resolver
	Faults   faults.Repository
	Clock    application.Clock

	// observability hooks
	OnAnalysis     func()
	OnMirrorFailed func()
}

// AnalyzeCommand untuk satu analysis request
type AnalyzeCommand struct {
	UserID   string
	Image    []byte
	Filename string
}

// AnalyzeResult response shape untuk caller
type AnalyzeResult struct {
	AnalysisID          string                   `json:"analysisId"`
	AIResult            *domain.Classification   `json:"aiResult"`
	RecommendedProducts []domainproducts.Product `json:"recommendedProducts"`
	CreatedAt           string                   `json:"createdAt"`
}

// HistoryItem format history untuk frontend: flags sudah diturunkan
// dari raw payload.
type HistoryItem struct {
	ID        string                   `json:"id"`
	UserID    string                   `json:"userId"`
	ImageURL  string                   `json:"imageUrl"`
	Flags     domain.ConditionFlags    `json:"flags"`
	Products  []domainproducts.Product `json:"products"`
	CreatedAt string                   `json:"createdAt"`
}

// Stats summary per user
type Stats struct {
	TotalAnalyses int          `json:"totalAnalyses"`
	LastAnalysis  *HistoryItem `json:"lastAnalysis,omitempty"`
}

// Analyze jalankan pipeline penuh:
// upload image -> classify (dengan fallback) -> normalize -> resolve
// products -> persist relational (fatal) -> mirror document (best-effort).
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*AnalyzeResult, error) {
	if len(cmd.Image) == 0 {
		return nil, ErrImageRequired
	}

	id := uuid.New().String()

	// image reference wajib ada di record; gagal simpan image berarti
	// request gagal, bukan degrade
	key := fmt.Sprintf("%s/%s-%s", cmd.UserID, id, filepath.Base(cmd.Filename))
	imageURL, err := s.Images.Upload(ctx, cmd.Image, key, "")
	if err != nil {
		s.recordFault(ctx, faults.StageStorage, cmd.UserID, id, err)
		return nil, fmt.Errorf("store image: %w", err)
	}

	// gateway selalu balikin classification well-formed, paling buruk
	// fallback degraded
	cl := s.Gateway.Classify(ctx, cmd.Image, cmd.Filename)

	skinType := domain.NormalizeSkinType(cl.SkinType)
	condition := domain.NormalizeCondition(cl.Disease)

	recommended, err := s.Resolver.Resolve(ctx, skinType, condition, appproducts.DefaultLimit)
	if err != nil {
		// dependency degradation, bukan request failure
		log.Printf("product resolve failed, continuing without recommendations: %v", err)
		recommended = []domainproducts.Product{}
	}

	payload := cl.Payload()
	payload["recommended_products"] = recommended

	record := &domain.Analysis{
		ID:        domain.AnalysisID(id),
		UserID:    cmd.UserID,
		ImageURL:  imageURL,
		RawResult: payload,
		Flags:     domain.FlagsFromRaw(payload),
		CreatedAt: s.Clock.Now(),
	}

	// authoritative write: gagal di sini fatal untuk request
	if err := s.Repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}
	if s.OnAnalysis != nil {
		s.OnAnalysis()
	}

	s.mirror(ctx, record, cmd.Filename, skinType, condition)

	return &AnalyzeResult{
		AnalysisID:          id,
		AIResult:            cl,
		RecommendedProducts: recommended,
		CreatedAt:           record.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

// mirror tulis denormalized log entry ke document store. Murni untuk
// analytics sekunder: failure ditelan, dilog, dan dihitung, tidak
// pernah sampai ke caller.
func (s *Service) mirror(ctx context.Context, record *domain.Analysis, filename string, skinType domain.SkinType, condition domain.Condition) {
	if s.Mirror == nil {
		return
	}
	entry := &domain.MirrorEntry{
		UserID:          record.UserID,
		AnalysisID:      string(record.ID),
		Filename:        filepath.Base(filename),
		DetectedType:    string(skinType),
		DetectedDisease: string(condition),
		RawOutput:       record.RawResult,
		CreatedAt:       record.CreatedAt,
	}
	if err := s.Mirror.Log(ctx, entry); err != nil {
		log.Printf("mirror write failed (ignored), analysis=%s: %v", record.ID, err)
		if s.OnMirrorFailed != nil {
			s.OnMirrorFailed()
		}
		s.recordFault(ctx, faults.StageMirror, record.UserID, string(record.ID), err)
	}
}

// History balikin analyses per user, newest first. Nol record -> list
// kosong.
func (s *Service) History(ctx context.Context, userID string) ([]HistoryItem, error) {
	records, err := s.Repo.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryItem, 0, len(records))
	for _, r := range records {
		out = append(out, toHistoryItem(r))
	}
	return out, nil
}

// GetStats summary per user
func (s *Service) GetStats(ctx context.Context, userID string) (*Stats, error) {
	total, last, err := s.Repo.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	st := &Stats{TotalAnalyses: total}
	if last != nil {
		item := toHistoryItem(last)
		st.LastAnalysis = &item
	}
	return st, nil
}

// Get satu record by id, scoped ke owner
func (s *Service) Get(ctx context.Context, id string, userID string) (*domain.Analysis, error) {
	return s.Repo.Get(ctx, domain.AnalysisID(id), userID)
}

// Delete hard delete by owner
func (s *Service) Delete(ctx context.Context, id string, userID string) error {
	return s.Repo.Delete(ctx, domain.AnalysisID(id), userID)
}

func (s *Service) recordFault(ctx context.Context, stage faults.Stage, userID, analysisID string, cause error) {
	if s.Faults == nil {
		return
	}
	f := &faults.Fault{
		UserID:     userID,
		AnalysisID: analysisID,
		Stage:      stage,
		Message:    cause.Error(),
	}
	if err := s.Faults.Save(ctx, f); err != nil {
		log.Printf("failed to record %s fault: %v", stage, err)
	}
}

func toHistoryItem(r *domain.Analysis) HistoryItem {
	return HistoryItem{
		ID:        string(r.ID),
		UserID:    r.UserID,
		ImageURL:  r.ImageURL,
		Flags:     r.Flags,
		Products:  productsFromRaw(r.RawResult),
		CreatedAt: r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// productsFromRaw ambil recommended products dari raw payload. Payload
// hasil baca database berupa []any, jadi di-retype lewat JSON roundtrip.
func productsFromRaw(raw map[string]any) []domainproducts.Product {
	v, ok := raw["recommended_products"]
	if !ok {
		v, ok = raw["recommendedProducts"]
	}
	if !ok || v == nil {
		return []domainproducts.Product{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return []domainproducts.Product{}
	}
	var out []domainproducts.Product
	if err := json.Unmarshal(b, &out); err != nil {
		return []domainproducts.Product{}
	}
	return out
}
