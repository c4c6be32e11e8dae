package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
)

// PublicIDs translates between the numeric ids exposed by the API and the
// internal record keys. Every entity that crosses the HTTP boundary gets its
// PublicID filled here, never in the services.
type PublicIDs struct {
	resolver domain.PublicIDResolver
}

func NewPublicIDs(resolver domain.PublicIDResolver) *PublicIDs {
	return &PublicIDs{resolver: resolver}
}

// ResolvePath reads the named path value as a numeric external id and
// returns the internal key. Writes a 400 or 404 response and returns false
// on failure.
func (p *PublicIDs) ResolvePath(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := r.PathValue(name)
	external, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest,
			fmt.Sprintf("invalid %s: %q", name, raw))
		return "", false
	}
	key, err := p.resolver.Resolve(r.Context(), external)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound,
				fmt.Sprintf("unknown %s: %d", name, external))
			return "", false
		}
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return "", false
	}
	return key, true
}

func (p *PublicIDs) FillEvent(ctx context.Context, ev *domain.Event) error {
	id, err := p.resolver.ExternalID(ctx, ev.ID)
	if err != nil {
		return err
	}
	ev.PublicID = id
	return nil
}

func (p *PublicIDs) FillEvents(ctx context.Context, events []*domain.Event) error {
	for _, ev := range events {
		if err := p.FillEvent(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (p *PublicIDs) FillSignup(ctx context.Context, s *domain.Signup) error {
	id, err := p.resolver.ExternalID(ctx, s.ID)
	if err != nil {
		return err
	}
	s.PublicID = id
	eventID, err := p.resolver.ExternalID(ctx, s.EventID)
	if err != nil {
		return err
	}
	s.EventID = strconv.FormatInt(eventID, 10)
	return nil
}

func (p *PublicIDs) FillSignups(ctx context.Context, signups []*domain.Signup) error {
	for _, s := range signups {
		if err := p.FillSignup(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (p *PublicIDs) FillParticipation(ctx context.Context, pt *domain.Participation) error {
	id, err := p.resolver.ExternalID(ctx, pt.ID)
	if err != nil {
		return err
	}
	pt.PublicID = id
	eventID, err := p.resolver.ExternalID(ctx, pt.EventID)
	if err != nil {
		return err
	}
	pt.EventID = strconv.FormatInt(eventID, 10)
	return nil
}

func (p *PublicIDs) FillParticipations(ctx context.Context, pts []*domain.Participation) error {
	for _, pt := range pts {
		if err := p.FillParticipation(ctx, pt); err != nil {
			return err
		}
	}
	return nil
}
