package bot

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"videobot/internal/domain"
	"videobot/internal/telegram"
)

type sentMessage struct {
	chatID   int64
	text     string
	keyboard *telegram.InlineKeyboardMarkup
}

type sentVideo struct {
	chatID   int64
	videoURL string
	caption  string
}

type fakeMessenger struct {
	mu       sync.Mutex
	messages []sentMessage
	edits    []sentMessage
	videos   []sentVideo
	answers  []string
	fileURL  string
	fileErr  error
}

func (f *fakeMessenger) SendMessage(ctx context.Context, chatID int64, text string, kb *telegram.InlineKeyboardMarkup) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text, keyboard: kb})
	return int64(len(f.messages)), nil
}

func (f *fakeMessenger) EditMessageText(ctx context.Context, chatID int64, messageID int64, text string, kb *telegram.InlineKeyboardMarkup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, sentMessage{chatID: chatID, text: text, keyboard: kb})
	return nil
}

func (f *fakeMessenger) AnswerCallbackQuery(ctx context.Context, callbackID string, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, text)
	return nil
}

func (f *fakeMessenger) SendVideo(ctx context.Context, chatID int64, videoURL string, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos = append(f.videos, sentVideo{chatID: chatID, videoURL: videoURL, caption: caption})
	return nil
}

func (f *fakeMessenger) FileURL(ctx context.Context, fileID string) (string, error) {
	if f.fileErr != nil {
		return "", f.fileErr
	}
	if f.fileURL != "" {
		return f.fileURL, nil
	}
	return "https://files.test/" + fileID, nil
}

func (f *fakeMessenger) sentMessages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMessage, len(f.messages))
	copy(out, f.messages)
	return out
}

func (f *fakeMessenger) sentVideos() []sentVideo {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentVideo, len(f.videos))
	copy(out, f.videos)
	return out
}

type fakeQuotaRepo struct {
	mu         sync.Mutex
	counts     map[string]int
	increments int
	lastToday  time.Time
	err        error
}

func newFakeQuotaRepo() *fakeQuotaRepo {
	return &fakeQuotaRepo{counts: make(map[string]int)}
}

func (f *fakeQuotaRepo) GetOrCreate(ctx context.Context, telegramID string, today time.Time) (*domain.QuotaRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastToday = today
	return &domain.QuotaRecord{TelegramID: telegramID, DailyCount: f.counts[telegramID], LastReset: today}, nil
}

func (f *fakeQuotaRepo) Increment(ctx context.Context, telegramID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[telegramID]++
	f.increments++
	return nil
}

type fakeJobRepo struct {
	mu       sync.Mutex
	created  []*domain.Job
	statuses map[string]domain.JobStatus
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{statuses: make(map[string]domain.JobStatus)}
}

func (f *fakeJobRepo) Create(ctx context.Context, job *domain.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *job
	f.created = append(f.created, &copied)
	return nil
}

func (f *fakeJobRepo) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[id] = status
	return nil
}

type statusResult struct {
	status *domain.GenerationStatus
	err    error
}

type fakeGateway struct {
	mu          sync.Mutex
	submitID    string
	submitErr   error
	submitCalls int
	lastSubmit  domain.GenerationRequest
	statusQueue []statusResult
	statusCalls int
}

func (f *fakeGateway) Submit(ctx context.Context, req domain.GenerationRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitCalls++
	f.lastSubmit = req
	if f.submitErr != nil {
		return "", f.submitErr
	}
	if f.submitID == "" {
		return "job-1", nil
	}
	return f.submitID, nil
}

func (f *fakeGateway) FetchStatus(ctx context.Context, jobID string) (*domain.GenerationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if len(f.statusQueue) == 0 {
		return &domain.GenerationStatus{Status: domain.JobStatusPending}, nil
	}
	next := f.statusQueue[0]
	if len(f.statusQueue) > 1 {
		f.statusQueue = f.statusQueue[1:]
	}
	return next.status, next.err
}

func (f *fakeGateway) statusCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls
}

func newTestCoordinator(m *fakeMessenger, g *fakeGateway, q *fakeQuotaRepo, j *fakeJobRepo, cfg Config) *Coordinator {
	if cfg.DailyLimit == 0 {
		cfg.DailyLimit = 50
	}
	if cfg.PollInterval == 0 {
		// Keep the background loop quiet during coordinator-level tests.
		cfg.PollInterval = time.Hour
	}
	if cfg.PollTimeout == 0 {
		cfg.PollTimeout = time.Millisecond
	}
	logger := zerolog.New(io.Discard)
	return NewCoordinator(m, g, q, j, logger, cfg)
}
