package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"netlister/internal/logging"
	"netlister/internal/model"
	"netlister/internal/netlist"
	"netlister/internal/repository"
	"netlister/internal/storage"
)

var (
	ErrIDRequired     = errors.New("id is required")
	ErrNotFound       = errors.New("netlist not found")
	ErrNameRequired   = errors.New("netlist name is required")
	ErrInvalidNetlist = errors.New("invalid netlist")
)

var tracer = otel.Tracer("netlister/internal/service")

// NetlistListResult is the service-level DTO for paginated netlists.
type NetlistListResult struct {
	Items []model.Netlist `json:"data"`
	Total int             `json:"total"`
}

// NetlistService defines the use cases of the netlist record store.
type NetlistService interface {
	// Create validates a submitted netlist, archives the raw body and stores
	// the record. The archived object is removed if the insert fails.
	Create(ctx context.Context, body []byte) (*model.Netlist, error)

	// List returns netlists using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*NetlistListResult, error)

	// Get returns a single netlist by its ID.
	Get(ctx context.Context, id string) (*model.Netlist, error)

	// Raw streams the archived submission of a netlist.
	Raw(ctx context.Context, id string) (io.ReadCloser, error)

	// RawURL returns a time-limited download link for the archived submission.
	RawURL(ctx context.Context, id string, expiry time.Duration) (string, error)

	// Delete removes a netlist from both storage and repository.
	Delete(ctx context.Context, id string) error
}

type netlistService struct {
	store   storage.Storage
	repo    repository.NetlistRepository
	logger  *zap.Logger
	metrics *Metrics
}

// NewNetlistService constructs a NetlistService. metrics may be nil.
func NewNetlistService(store storage.Storage, repo repository.NetlistRepository, logger *zap.Logger, metrics *Metrics) NetlistService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &netlistService{store: store, repo: repo, logger: logger, metrics: metrics}
}

func (s *netlistService) Create(ctx context.Context, body []byte) (_ *model.Netlist, err error) {
	ctx, span := tracer.Start(ctx, "NetlistService.Create", trace.WithAttributes(
		attribute.Int("netlist.body_size", len(body)),
	))
	defer func() {
		endSpan(span, err)
		s.metrics.observeCreate(err)
	}()

	doc, err := netlist.Decode(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNetlist, err)
	}
	valid, err := netlist.ValidateStructure(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNetlist, err)
	}
	name := strings.TrimSpace(doc.String("name"))
	if name == "" {
		return nil, ErrNameRequired
	}
	payload := valid.Payload(name, doc.String("description"))

	id := uuid.NewString()
	key := storage.ArchiveKey(id)
	span.SetAttributes(attribute.String("netlist.id", id))

	info, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: netlist.JSONMediaType,
		Metadata:    map[string]string{"netlist-name": name},
	})
	if err != nil {
		return nil, fmt.Errorf("archive netlist: %w", err)
	}

	n := &model.Netlist{
		ID:             id,
		Name:           payload.Name,
		Description:    payload.Description,
		Components:     payload.Components,
		Nets:           payload.Nets,
		ComponentCount: len(valid.Components),
		NetCount:       len(valid.Nets),
		StoragePath:    info.Key,
		CreatedAt:      time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, n)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Error("rollback archived netlist", logging.RequestIDField(ctx), zap.String("key", key), zap.Error(delErr))
			return nil, fmt.Errorf("db save failed: %w; rollback delete failed: %w", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.logger.Info("netlist created",
		logging.RequestIDField(ctx),
		zap.String("id", stored.ID),
		zap.String("name", stored.Name),
		zap.Int("components", stored.ComponentCount),
		zap.Int("nets", stored.NetCount),
	)
	return stored, nil
}

func (s *netlistService) List(ctx context.Context, limit, offset int) (*NetlistListResult, error) {
	ctx, span := tracer.Start(ctx, "NetlistService.List")
	defer span.End()

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &NetlistListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *netlistService) Get(ctx context.Context, id string) (_ *model.Netlist, err error) {
	ctx, span := tracer.Start(ctx, "NetlistService.Get", trace.WithAttributes(attribute.String("netlist.id", id)))
	defer func() { endSpan(span, err) }()

	return s.find(ctx, id)
}

func (s *netlistService) Raw(ctx context.Context, id string) (_ io.ReadCloser, err error) {
	ctx, span := tracer.Start(ctx, "NetlistService.Raw", trace.WithAttributes(attribute.String("netlist.id", id)))
	defer func() { endSpan(span, err) }()

	n, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	rc, _, err := s.store.Get(ctx, n.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch archive: %w", err)
	}
	return rc, nil
}

func (s *netlistService) RawURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	n, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, n.StoragePath, expiry)
	if err != nil {
		return "", fmt.Errorf("presign archive: %w", err)
	}
	return u, nil
}

func (s *netlistService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "NetlistService.Delete", trace.WithAttributes(attribute.String("netlist.id", id)))
	defer func() { endSpan(span, err) }()

	n, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	// Storage first; a failure keeps the row so the object is not orphaned.
	if err := s.store.Delete(ctx, n.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.observeDelete()
	s.logger.Info("netlist deleted", logging.RequestIDField(ctx), zap.String("id", id))
	return nil
}

func (s *netlistService) find(ctx context.Context, id string) (*model.Netlist, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
