// Package resolver turns an ISBN into book metadata by querying a primary
// bibliographic source, falling back to a secondary one whose title is then
// translated on a best-effort basis.
package resolver

import (
	"context"
	"errors"
	"strings"

	"bookshelf/internal/metrics"
	"bookshelf/internal/platform/googlebooks"
	"bookshelf/internal/platform/openlibrary"

	"go.uber.org/zap"
)

// ErrNotFound is returned when no source knows the ISBN.
var ErrNotFound = errors.New("no metadata found for isbn")

type PrimarySource interface {
	Name() string
	GetBookByISBN(ctx context.Context, isbn string) (*openlibrary.BookDetails, error)
}

type SecondarySource interface {
	Name() string
	SearchByISBN(ctx context.Context, isbn string) (*googlebooks.VolumeInfo, error)
}

type Translator interface {
	Name() string
	Translate(ctx context.Context, text string) (string, error)
}

type Resolver struct {
	primary     PrimarySource
	secondary   SecondarySource
	translators []Translator
	log         *zap.Logger
}

// New builds a Resolver. Translators are tried in order.
func New(primary PrimarySource, secondary SecondarySource, translators []Translator, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		primary:     primary,
		secondary:   secondary,
		translators: translators,
		log:         log.Named("resolver"),
	}
}

// Resolve never retries. Upstream failures are logged and treated as misses;
// the only error returned is ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, isbn string) (Metadata, error) {
	if meta, ok := r.lookupPrimary(ctx, isbn); ok {
		return meta, nil
	}

	meta, ok := r.lookupSecondary(ctx, isbn)
	if !ok {
		return Metadata{}, ErrNotFound
	}

	meta.Title = ChooseTitle(meta.Title, r.translate(ctx, meta.Title))
	return meta, nil
}

func (r *Resolver) lookupPrimary(ctx context.Context, isbn string) (Metadata, bool) {
	if r.primary == nil {
		return Metadata{}, false
	}
	details, err := r.primary.GetBookByISBN(ctx, isbn)
	if err != nil {
		r.recordMiss(r.primary.Name(), isbn, err, openlibrary.ErrNotFound)
		return Metadata{}, false
	}
	metrics.IncLookup(r.primary.Name(), metrics.OutcomeHit)
	return FromOpenLibrary(*details), true
}

func (r *Resolver) lookupSecondary(ctx context.Context, isbn string) (Metadata, bool) {
	if r.secondary == nil {
		return Metadata{}, false
	}
	info, err := r.secondary.SearchByISBN(ctx, isbn)
	if err != nil {
		r.recordMiss(r.secondary.Name(), isbn, err, googlebooks.ErrNotFound)
		return Metadata{}, false
	}
	metrics.IncLookup(r.secondary.Name(), metrics.OutcomeHit)
	return FromGoogleBooks(*info), true
}

func (r *Resolver) recordMiss(source, isbn string, err, notFound error) {
	if errors.Is(err, notFound) {
		metrics.IncLookup(source, metrics.OutcomeMiss)
		r.log.Debug("isbn not found", zap.String("source", source), zap.String("isbn", isbn))
		return
	}
	metrics.IncLookup(source, metrics.OutcomeError)
	r.log.Warn("metadata lookup failed", zap.String("source", source), zap.String("isbn", isbn), zap.Error(err))
}

// translate returns "" when every translator fails or text is blank.
func (r *Resolver) translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	for _, t := range r.translators {
		out, err := t.Translate(ctx, text)
		if err == nil && strings.TrimSpace(out) != "" {
			metrics.IncTranslation(t.Name(), metrics.OutcomeSuccess)
			return out
		}
		metrics.IncTranslation(t.Name(), metrics.OutcomeError)
		r.log.Debug("title translation failed", zap.String("provider", t.Name()), zap.Error(err))
	}
	return ""
}
