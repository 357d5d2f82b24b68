// Package pipeline contains the ingestion core: the roster sync, the trade
// sync, and the orchestrator that sequences them under one deadline. Both
// syncs fail soft: any upstream or store error degrades to a zero-delta
// result instead of aborting the run.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/mholloway/congresswatch/internal/domain"
)

// RosterFetcher retrieves the current legislator roster from an external
// directory service, returning the mapped members and the raw payload.
type RosterFetcher interface {
	CurrentRoster(ctx context.Context) ([]domain.Member, []byte, error)
}

// RosterSync brings the stored member set up to date with the external
// roster. It only appends: rows are never updated or deleted.
type RosterSync struct {
	fetcher  RosterFetcher
	members  domain.MemberStore
	archiver domain.SnapshotArchiver // optional
	logger   *slog.Logger
}

// NewRosterSync creates a RosterSync. archiver may be nil, in which case raw
// payloads are not archived.
func NewRosterSync(fetcher RosterFetcher, members domain.MemberStore, archiver domain.SnapshotArchiver, logger *slog.Logger) *RosterSync {
	return &RosterSync{
		fetcher:  fetcher,
		members:  members,
		archiver: archiver,
		logger:   logger.With(slog.String("component", "roster_sync")),
	}
}

// Run executes one roster sync pass. It never returns an error: upstream and
// store failures are logged and reported as zero deltas.
func (s *RosterSync) Run(ctx context.Context) domain.RosterResult {
	s.logger.InfoContext(ctx, "fetching congress members")

	incoming, raw, err := s.fetcher.CurrentRoster(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "roster fetch failed", slog.String("error", err.Error()))
		return domain.RosterResult{}
	}

	s.archive(ctx, raw)

	existing, err := s.members.ListKeys(ctx)
	if err != nil {
		// Proceed with an empty set; the store's uniqueness constraint
		// rejects any duplicate the diff would have caught.
		s.logger.WarnContext(ctx, "could not load existing member keys", slog.String("error", err.Error()))
	}
	existingSet := make(map[string]struct{}, len(existing))
	for _, k := range existing {
		existingSet[k] = struct{}{}
	}

	var fresh []domain.Member
	for _, m := range incoming {
		if _, ok := existingSet[m.Key()]; !ok {
			fresh = append(fresh, m)
		}
	}

	if len(fresh) > 0 {
		if err := s.members.InsertBatch(ctx, fresh); err != nil {
			s.logger.ErrorContext(ctx, "member batch insert failed", slog.String("error", err.Error()))
			return domain.RosterResult{MembersFetched: len(incoming)}
		}
	}

	s.logger.InfoContext(ctx, "roster sync complete",
		slog.Int("fetched", len(incoming)),
		slog.Int("added", len(fresh)),
	)
	return domain.RosterResult{
		MembersFetched: len(incoming),
		MembersAdded:   len(fresh),
	}
}

// archive uploads the raw payload when an archiver is configured, logging
// failures without propagating them.
func (s *RosterSync) archive(ctx context.Context, raw []byte) {
	if s.archiver == nil || len(raw) == 0 {
		return
	}
	if err := s.archiver.ArchiveSnapshot(ctx, "govtrack", raw); err != nil {
		s.logger.WarnContext(ctx, "roster snapshot archive failed", slog.String("error", err.Error()))
	}
}
