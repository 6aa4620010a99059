package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"mesh-demo/internal/domain"
	"mesh-demo/internal/lineage"
)

// cacheKey identifies a computed lineage result. Including the graph
// version means a write invalidates every older entry for free.
type cacheKey struct {
	version int64
	startID string
}

// LineageService computes node-, port-, and column-level lineage over the
// stored graph. It keeps the latest graph snapshot and its adjacency maps
// warm, and LRU-caches computed results per graph version.
type LineageService struct {
	repo domain.GraphRepository
	log  *slog.Logger

	mu   sync.Mutex
	snap *domain.GraphSnapshot
	maps *lineage.Maps

	portCache   *lru.Cache[cacheKey, domain.CompleteLineage]
	columnCache *lru.Cache[cacheKey, domain.CompleteColumnLineage]
}

// NewLineageService creates a LineageService with the given result-cache
// capacity.
func NewLineageService(repo domain.GraphRepository, log *slog.Logger, cacheSize int) (*LineageService, error) {
	portCache, err := lru.New[cacheKey, domain.CompleteLineage](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("port lineage cache: %w", err)
	}
	columnCache, err := lru.New[cacheKey, domain.CompleteColumnLineage](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("column lineage cache: %w", err)
	}
	return &LineageService{
		repo:        repo,
		log:         log,
		portCache:   portCache,
		columnCache: columnCache,
	}, nil
}

// snapshot returns the current graph with pre-built adjacency maps,
// reloading from the repository only when the stored version moved.
func (s *LineageService) snapshot(ctx context.Context) (*domain.GraphSnapshot, *lineage.Maps, error) {
	version, err := s.repo.Version(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("graph version: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil && s.snap.Version == version {
		return s.snap, s.maps, nil
	}

	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("graph snapshot: %w", err)
	}
	s.snap = snap
	s.maps = lineage.BuildMaps(snap.Relationships, snap.Nodes)
	s.log.Debug("graph snapshot rebuilt",
		"version", snap.Version,
		"nodes", len(snap.Nodes),
		"relationships", len(snap.Relationships))
	return s.snap, s.maps, nil
}

// Refresh reloads the snapshot if the stored graph changed. Wired to a
// cron schedule so interactive queries rarely pay the rebuild.
func (s *LineageService) Refresh(ctx context.Context) error {
	_, _, err := s.snapshot(ctx)
	return err
}

// PortLineage returns the complete lineage of one port: combined sets plus
// the upstream and downstream halves. An empty port ID is deselection and
// yields the empty sentinel; an unknown port ID yields a result containing
// only itself, matching the engine's permissive contract.
func (s *LineageService) PortLineage(ctx context.Context, portID string) (domain.CompleteLineage, error) {
	if portID == "" {
		return domain.EmptyCompleteLineage(), nil
	}

	snap, maps, err := s.snapshot(ctx)
	if err != nil {
		return domain.CompleteLineage{}, err
	}

	key := cacheKey{version: snap.Version, startID: portID}
	if cached, ok := s.portCache.Get(key); ok {
		return cached, nil
	}

	res := lineage.ForPortWithMaps(portID, maps)
	s.portCache.Add(key, res)
	return res, nil
}

// NodeLineage returns collapsed-node lineage over direct relationships.
func (s *LineageService) NodeLineage(ctx context.Context, nodeID string) (domain.NodeLineageResult, error) {
	snap, _, err := s.snapshot(ctx)
	if err != nil {
		return domain.NodeLineageResult{}, err
	}
	return lineage.ForNode(nodeID, snap.Relationships, snap.Nodes), nil
}

// ColumnLineage returns the complete column lineage of one column. The
// port scope is derived from the owning port's own lineage: the ports
// upstream and downstream of it bound which columns are visible.
func (s *LineageService) ColumnLineage(ctx context.Context, columnID string) (domain.CompleteColumnLineage, error) {
	if columnID == "" {
		return domain.EmptyCompleteColumnLineage(), nil
	}

	snap, maps, err := s.snapshot(ctx)
	if err != nil {
		return domain.CompleteColumnLineage{}, err
	}

	key := cacheKey{version: snap.Version, startID: columnID}
	if cached, ok := s.columnCache.Get(key); ok {
		return cached, nil
	}

	ownerPortID := findColumnPort(snap.Nodes, columnID)
	if ownerPortID == "" {
		return domain.CompleteColumnLineage{}, domain.ErrNotFound("column %s not found", columnID)
	}

	portRes := lineage.ForPortWithMaps(ownerPortID, maps)
	scope := buildScope(maps, ownerPortID, portRes)

	res := lineage.ForColumn(columnID, snap.ColumnRelationships, scope)
	s.columnCache.Add(key, res)
	return res, nil
}

// findColumnPort returns the ID of the port declaring the column, or "".
func findColumnPort(nodes []domain.Node, columnID string) string {
	for _, node := range nodes {
		for _, group := range [][]domain.Port{node.InputPorts, node.OutputPorts} {
			for _, p := range group {
				for _, c := range p.Columns {
					if c.ID == columnID {
						return p.ID
					}
				}
			}
		}
	}
	return ""
}

// buildScope assembles the selected/upstream/downstream port triple from a
// port lineage result.
func buildScope(maps *lineage.Maps, selectedID string, portRes domain.CompleteLineage) domain.PortScope {
	scope := domain.PortScope{}
	if p, _, _, ok := maps.Owner(selectedID); ok {
		scope.Selected = p
	} else {
		scope.Selected = domain.Port{ID: selectedID}
	}
	for _, id := range portRes.Upstream.PortIDs.Values() {
		if id == selectedID {
			continue
		}
		if p, _, _, ok := maps.Owner(id); ok {
			scope.Upstream = append(scope.Upstream, p)
		}
	}
	for _, id := range portRes.Downstream.PortIDs.Values() {
		if id == selectedID {
			continue
		}
		if p, _, _, ok := maps.Owner(id); ok {
			scope.Downstream = append(scope.Downstream, p)
		}
	}
	return scope
}
