package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/username/ibportal/src/logger"
	"github.com/username/ibportal/src/models"
	"github.com/username/ibportal/src/processors"
	"github.com/username/ibportal/src/security/validation"
	"github.com/username/ibportal/src/utils"
)

const ckSession = "calculator_session_%s"

// CalculatorService drives the calculator workflow: open a session with its
// own catalog snapshot, edit inputs, calculate, go back, close.
type CalculatorService interface {
	OpenSession(ctx context.Context) (models.CalculatorSession, error)
	GetSession(id string) (models.CalculatorSession, error)
	UpdateInputs(id string, inputs models.CalculatorInputs) (models.CalculatorSession, error)
	Calculate(id string) (models.CalculatorSession, error)
	Back(id string) (models.CalculatorSession, error)
	CloseSession(id string) error

	Quote(ctx context.Context, accountTypeID string, lots float64) (*models.CommissionQuote, error)
	SearchInstruments(ctx context.Context, query string) ([]models.Instrument, error)
}

type calculatorSession struct {
	mu   sync.Mutex
	view models.CalculatorSession
}

type calculatorServiceImpl struct {
	catalogs  CatalogProvider
	processor processors.CommissionProcessor
	filter    processors.InstrumentFilter
	sessions  *gocache.Cache
	now       func() time.Time
}

func NewCalculatorService(catalogs CatalogProvider, processor processors.CommissionProcessor, filter processors.InstrumentFilter, sessionTTL time.Duration) CalculatorService {
	return &calculatorServiceImpl{
		catalogs:  catalogs,
		processor: processor,
		filter:    filter,
		sessions:  gocache.New(sessionTTL, sessionTTL),
		now:       time.Now,
	}
}

func (s *calculatorServiceImpl) OpenSession(ctx context.Context) (models.CalculatorSession, error) {
	catalog, err := s.catalogs.GetCatalog(ctx)
	if err != nil {
		return models.CalculatorSession{}, err
	}

	now := s.now()
	sess := &calculatorSession{view: models.CalculatorSession{
		ID:        uuid.NewString(),
		State:     models.CalculatorStateInput,
		Results:   []models.CalculationResult{},
		Display:   []models.DisplayResult{},
		Catalog:   catalog,
		OpenedAt:  now,
		UpdatedAt: now,
	}}
	s.sessions.Set(fmt.Sprintf(ckSession, sess.view.ID), sess, gocache.DefaultExpiration)

	logger.FromContext(ctx).Info("Calculator session opened", "sessionID", sess.view.ID)
	return sess.view, nil
}

func (s *calculatorServiceImpl) GetSession(id string) (models.CalculatorSession, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.CalculatorSession{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view, nil
}

func (s *calculatorServiceImpl) UpdateInputs(id string, inputs models.CalculatorInputs) (models.CalculatorSession, error) {
	return s.mutate(id, func(v *models.CalculatorSession) error {
		if v.State != models.CalculatorStateInput {
			return fmt.Errorf("%w: inputs can only be edited in the %s state", ErrInvalidTransition, models.CalculatorStateInput)
		}
		if inputs.InstrumentID != "" {
			if _, ok := v.Catalog.FindInstrument(inputs.InstrumentID); !ok {
				return fmt.Errorf("%w: unknown instrument %q", ErrInvalidInput, inputs.InstrumentID)
			}
		}
		v.Inputs = inputs
		return nil
	})
}

// Calculate moves the session from input to results.
func (s *calculatorServiceImpl) Calculate(id string) (models.CalculatorSession, error) {
	return s.mutate(id, func(v *models.CalculatorSession) error {
		if v.State != models.CalculatorStateInput {
			return fmt.Errorf("%w: calculate is only allowed from the %s state", ErrInvalidTransition, models.CalculatorStateInput)
		}
		if err := checkInputs(v.Inputs); err != nil {
			return err
		}
		v.Results = s.processor.Calculate(v.Inputs.AccountTypeID, v.Inputs.Lots, v.Catalog.AccountTypes, v.Catalog.CommissionLevels)
		v.Display = utils.FormatResults(v.Results)
		v.State = models.CalculatorStateResults
		return nil
	})
}

// Back returns to input, dropping the results but keeping the inputs.
func (s *calculatorServiceImpl) Back(id string) (models.CalculatorSession, error) {
	return s.mutate(id, func(v *models.CalculatorSession) error {
		if v.State != models.CalculatorStateResults {
			return fmt.Errorf("%w: back is only allowed from the %s state", ErrInvalidTransition, models.CalculatorStateResults)
		}
		v.Results = []models.CalculationResult{}
		v.Display = []models.DisplayResult{}
		v.State = models.CalculatorStateInput
		return nil
	})
}

func (s *calculatorServiceImpl) CloseSession(id string) error {
	if _, err := s.lookup(id); err != nil {
		return err
	}
	s.sessions.Delete(fmt.Sprintf(ckSession, id))
	logger.L.Info("Calculator session closed", "sessionID", id)
	return nil
}

// Quote runs a one-off calculation against the current catalog.
func (s *calculatorServiceImpl) Quote(ctx context.Context, accountTypeID string, lots float64) (*models.CommissionQuote, error) {
	if err := checkInputs(models.CalculatorInputs{AccountTypeID: accountTypeID, Lots: lots}); err != nil {
		return nil, err
	}
	catalog, err := s.catalogs.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	results := s.processor.Calculate(accountTypeID, lots, catalog.AccountTypes, catalog.CommissionLevels)
	logger.FromContext(ctx).Debug("Commission quote computed", "accountTypeID", accountTypeID, "lots", lots, "levels", len(results))
	return &models.CommissionQuote{
		AccountTypeID: accountTypeID,
		Lots:          lots,
		Results:       results,
		Display:       utils.FormatResults(results),
	}, nil
}

func (s *calculatorServiceImpl) SearchInstruments(ctx context.Context, query string) ([]models.Instrument, error) {
	catalog, err := s.catalogs.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return s.filter.Search(catalog.Instruments, validation.SanitizeSearchQuery(query)), nil
}

func (s *calculatorServiceImpl) lookup(id string) (*calculatorSession, error) {
	raw, found := s.sessions.Get(fmt.Sprintf(ckSession, id))
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return raw.(*calculatorSession), nil
}

// mutate applies fn under the session lock and extends the session's lifetime.
func (s *calculatorServiceImpl) mutate(id string, fn func(v *models.CalculatorSession) error) (models.CalculatorSession, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.CalculatorSession{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next := sess.view
	if err := fn(&next); err != nil {
		return sess.view, err
	}
	next.CanCalculate = next.State == models.CalculatorStateInput && checkInputs(next.Inputs) == nil
	next.UpdatedAt = s.now()
	sess.view = next
	s.sessions.Set(fmt.Sprintf(ckSession, id), sess, gocache.DefaultExpiration)
	return sess.view, nil
}

// checkInputs is the caller-side guard in front of the engine.
func checkInputs(inputs models.CalculatorInputs) error {
	if inputs.AccountTypeID == "" {
		return fmt.Errorf("%w: an account type must be selected", ErrInvalidInput)
	}
	if err := validation.ValidateLots(inputs.Lots); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
