package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"videobot/internal/domain"
	"videobot/internal/infra"
	"videobot/internal/telegram"
)

// Fallback when the user sends a photo without a caption.
const defaultPrompt = "Generate video from this image"

// Messenger is the chat surface the coordinator talks to.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, keyboard *telegram.InlineKeyboardMarkup) (int64, error)
	EditMessageText(ctx context.Context, chatID int64, messageID int64, text string, keyboard *telegram.InlineKeyboardMarkup) error
	AnswerCallbackQuery(ctx context.Context, callbackID string, text string) error
	SendVideo(ctx context.Context, chatID int64, videoURL string, caption string) error
	FileURL(ctx context.Context, fileID string) (string, error)
}

// Config carries the coordinator's fixed operating constants.
type Config struct {
	DailyLimit   int
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Coordinator owns per-user pending selections, submits generation jobs and
// hands each accepted job to a background reconciliation loop.
type Coordinator struct {
	messenger    Messenger
	gateway      domain.GenerationGateway
	quotas       domain.QuotaRepository
	jobs         domain.JobRepository
	logger       infra.Logger
	dailyLimit   int
	pollInterval time.Duration
	pollTimeout  time.Duration
	now          func() time.Time

	mu         sync.Mutex
	selections map[int64]*domain.Selection
}

// NewCoordinator wires a coordinator from its collaborators.
func NewCoordinator(messenger Messenger, gateway domain.GenerationGateway, quotas domain.QuotaRepository, jobs domain.JobRepository, logger infra.Logger, cfg Config) *Coordinator {
	return &Coordinator{
		messenger:    messenger,
		gateway:      gateway,
		quotas:       quotas,
		jobs:         jobs,
		logger:       logger,
		dailyLimit:   cfg.DailyLimit,
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
		now:          time.Now,
		selections:   make(map[int64]*domain.Selection),
	}
}

// Selection returns a copy of the user's pending selection.
func (c *Coordinator) Selection(chatID int64) (domain.Selection, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sel, ok := c.selections[chatID]
	if !ok {
		return domain.Selection{}, false
	}
	return *sel, true
}

// SetPhoto stores the photo and caption for the user's next request. Model
// and duration picked earlier survive, so either ordering completes the
// selection.
func (c *Coordinator) SetPhoto(chatID int64, fileID, caption string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sel := c.selections[chatID]
	if sel == nil {
		sel = &domain.Selection{}
		c.selections[chatID] = sel
	}
	sel.PhotoID = fileID
	sel.Prompt = caption
}

// SetModel records the model choice. Re-selection overwrites the stored
// model without touching the duration.
func (c *Coordinator) SetModel(chatID int64, modelID string) error {
	if !domain.ValidModel(modelID) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownModel, modelID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	sel := c.selections[chatID]
	if sel == nil {
		sel = &domain.Selection{}
		c.selections[chatID] = sel
	}
	sel.Model = modelID
	return nil
}

// SetDuration records the duration choice.
func (c *Coordinator) SetDuration(chatID int64, duration string) error {
	if !domain.ValidDuration(duration) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownDuration, duration)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	sel := c.selections[chatID]
	if sel == nil {
		sel = &domain.Selection{}
		c.selections[chatID] = sel
	}
	sel.Duration = duration
	return nil
}

func (c *Coordinator) clearSelection(chatID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.selections, chatID)
}

// SubmitRequest runs the submission flow for the user's pending selection:
// completeness check, quota check, photo resolution, gateway submission,
// then job bookkeeping and the start of the reconciliation loop. Every
// outcome except an incomplete selection clears the pending selection, so a
// user always starts the next cycle fresh. Quota is only consumed when the
// gateway accepts the job.
func (c *Coordinator) SubmitRequest(ctx context.Context, chatID int64, locale string) error {
	sel, ok := c.Selection(chatID)
	if !ok || !sel.Complete() {
		return domain.ErrIncompleteSelection
	}

	userID := strconv.FormatInt(chatID, 10)

	quota, err := c.quotas.GetOrCreate(ctx, userID, c.now())
	if err != nil {
		c.clearSelection(chatID)
		return fmt.Errorf("load quota: %w", err)
	}
	if quota.Exhausted(c.dailyLimit) {
		c.clearSelection(chatID)
		return domain.ErrQuotaExceeded
	}

	imageURL, err := c.messenger.FileURL(ctx, sel.PhotoID)
	if err != nil {
		c.clearSelection(chatID)
		return fmt.Errorf("resolve photo: %w", err)
	}

	prompt := strings.TrimSpace(sel.Prompt)
	if prompt == "" {
		prompt = defaultPrompt
	}
	duration, _ := strconv.Atoi(sel.Duration)

	jobID, err := c.gateway.Submit(ctx, domain.GenerationRequest{
		ImageURL: imageURL,
		Prompt:   prompt,
		Model:    sel.Model,
		Duration: duration,
	})
	if err != nil {
		c.clearSelection(chatID)
		return err
	}

	record := &domain.Job{
		ID:            uuid.NewString(),
		TelegramID:    userID,
		ProviderJobID: jobID,
		Status:        domain.JobStatusPending,
		Model:         sel.Model,
		Prompt:        prompt,
	}
	if err := c.jobs.Create(ctx, record); err != nil {
		// The provider accepted the job; losing the record only costs us
		// the audit trail.
		c.logger.Error().Err(err).Str("job_id", jobID).Msg("persist job record")
	}
	if err := c.quotas.Increment(ctx, userID); err != nil {
		c.logger.Error().Err(err).Str("user_id", userID).Msg("increment quota")
	}

	c.clearSelection(chatID)
	c.startReconciliation(chatID, record.ID, jobID, locale)

	c.logger.Info().
		Str("job_id", jobID).
		Int64("chat_id", chatID).
		Str("model", sel.Model).
		Int("duration", duration).
		Msg("generation job submitted")
	return nil
}

func (c *Coordinator) startReconciliation(chatID int64, recordID, jobID, locale string) {
	go c.reconcile(context.Background(), chatID, recordID, jobID, locale)
}
