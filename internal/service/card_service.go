package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/youruser/birthdaycard/internal/cards"
	"github.com/youruser/birthdaycard/internal/genai"
	imagepkg "github.com/youruser/birthdaycard/internal/image"
)

// CardRenderer renders a card to PNG bytes.
type CardRenderer interface {
	Render(ctx context.Context, in imagepkg.CardInput) ([]byte, error)
}

// CardService turns a card request into a stored card.
type CardService struct {
	gen      genai.Generator
	renderer CardRenderer
	store    cards.Store
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewCardService(gen genai.Generator, renderer CardRenderer, store cards.Store, log logrus.FieldLogger) *CardService {
	return &CardService{gen: gen, renderer: renderer, store: store, log: log, now: time.Now}
}

// Create asks the generator for a greeting and a background concurrently,
// renders the card and stores it. A failed greeting falls back to a fixed
// template; a failed background fails the whole request.
func (s *CardService) Create(ctx context.Context, req cards.Request) (cards.Card, error) {
	if err := req.Validate(); err != nil {
		return cards.Card{}, err
	}
	log := s.log.WithField("name", req.Name)
	started := s.now()

	var greeting, background string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := s.gen.GenerateGreeting(gctx, req.Name, req.Age, req.Profession)
		if err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() == nil {
				// aborted by a background failure, nothing to fall back for
				return nil
			}
			log.WithError(err).Warn("greeting generation failed, using fallback")
			text = cards.FallbackGreeting(req.Name, req.Age)
		}
		greeting = text
		return nil
	})
	g.Go(func() error {
		bg, err := s.gen.GenerateBackgroundImage(gctx)
		if err != nil {
			var se *genai.ServiceError
			if !errors.As(err, &se) {
				err = &genai.ServiceError{Op: genai.OpBackground, Err: err}
			}
			return err
		}
		background = bg
		return nil
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("background generation failed")
		return cards.Card{}, err
	}

	png, err := s.renderer.Render(ctx, imagepkg.CardInput{
		Name:     req.Name,
		Greeting: greeting,
		Sources: imagepkg.Sources{
			Background: background,
			Photo:      req.Photo,
			Logo:       req.Logo,
		},
	})
	if err != nil {
		log.WithError(err).Error("card render failed")
		return cards.Card{}, err
	}

	card := cards.Card{
		ID:        uuid.NewString(),
		FileName:  cards.FileName(req.Name),
		Name:      req.Name,
		Greeting:  greeting,
		CreatedAt: s.now().UTC(),
		PNG:       png,
	}
	if err := s.store.Save(ctx, card); err != nil {
		return cards.Card{}, err
	}

	log.WithFields(logrus.Fields{
		"card_id": card.ID,
		"bytes":   len(png),
		"took":    s.now().Sub(started).String(),
	}).Info("card created")
	return card, nil
}

// Get returns a stored card.
func (s *CardService) Get(ctx context.Context, id string) (cards.Card, error) {
	return s.store.Get(ctx, id)
}
