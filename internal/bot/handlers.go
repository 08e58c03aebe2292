package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"videobot/internal/domain"
	"videobot/internal/telegram"
)

const (
	callbackModelPrefix    = "model:"
	callbackDurationPrefix = "dur:"
)

// HandleUpdate dispatches one Telegram update. The update loop delivers
// events for a chat sequentially, so per-chat handling is non-reentrant.
func (c *Coordinator) HandleUpdate(ctx context.Context, u telegram.Update) {
	switch {
	case u.CallbackQuery != nil:
		c.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil && u.Message.LargestPhoto() != "":
		c.handlePhoto(ctx, u.Message)
	case u.Message != nil && strings.HasPrefix(u.Message.Text, "/start"):
		c.handleStart(ctx, u.Message)
	}
}

func (c *Coordinator) handleStart(ctx context.Context, m *telegram.Message) {
	msgs := messagesFor(localeOf(m.From))
	if _, err := c.messenger.SendMessage(ctx, m.Chat.ID, fmt.Sprintf(msgs.welcome, c.dailyLimit), nil); err != nil {
		c.logger.Error().Err(err).Int64("chat_id", m.Chat.ID).Msg("send welcome")
	}
}

func (c *Coordinator) handlePhoto(ctx context.Context, m *telegram.Message) {
	chatID := m.Chat.ID
	msgs := messagesFor(localeOf(m.From))

	// Early quota check for better feedback; SubmitRequest enforces the
	// limit again before anything reaches the gateway.
	quota, err := c.quotas.GetOrCreate(ctx, strconv.FormatInt(chatID, 10), c.now())
	if err != nil {
		c.logger.Error().Err(err).Int64("chat_id", chatID).Msg("load quota")
	} else if quota.Exhausted(c.dailyLimit) {
		if _, err := c.messenger.SendMessage(ctx, chatID, fmt.Sprintf(msgs.quotaExceeded, c.dailyLimit), nil); err != nil {
			c.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send quota message")
		}
		return
	}

	c.SetPhoto(chatID, m.LargestPhoto(), m.Caption)

	if _, err := c.messenger.SendMessage(ctx, chatID, msgs.chooseModel, modelKeyboard()); err != nil {
		c.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send model keyboard")
	}
}

func (c *Coordinator) handleCallback(ctx context.Context, q *telegram.CallbackQuery) {
	msgs := messagesFor(localeOf(q.From))
	if q.Message == nil {
		c.answerCallback(ctx, q.ID, "")
		return
	}
	chatID := q.Message.Chat.ID

	if _, ok := c.Selection(chatID); !ok {
		c.answerCallback(ctx, q.ID, msgs.sessionExpired)
		return
	}

	switch {
	case strings.HasPrefix(q.Data, callbackModelPrefix):
		modelID := strings.TrimPrefix(q.Data, callbackModelPrefix)
		if err := c.SetModel(chatID, modelID); err != nil {
			c.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("model selection rejected")
			c.answerCallback(ctx, q.ID, "")
			return
		}
		c.answerCallback(ctx, q.ID, "")
		if err := c.messenger.EditMessageText(ctx, chatID, q.Message.MessageID, msgs.chooseDuration, durationKeyboard(msgs)); err != nil {
			c.logger.Error().Err(err).Int64("chat_id", chatID).Msg("edit to duration keyboard")
		}

	case strings.HasPrefix(q.Data, callbackDurationPrefix):
		duration := strings.TrimPrefix(q.Data, callbackDurationPrefix)
		if err := c.SetDuration(chatID, duration); err != nil {
			c.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("duration selection rejected")
			c.answerCallback(ctx, q.ID, "")
			return
		}
		c.answerCallback(ctx, q.ID, msgs.starting)
		if err := c.messenger.EditMessageText(ctx, chatID, q.Message.MessageID, msgs.processing, nil); err != nil {
			c.logger.Error().Err(err).Int64("chat_id", chatID).Msg("edit to processing")
		}

		locale := localeOf(q.From)
		err := c.SubmitRequest(ctx, chatID, locale)
		switch {
		case err == nil:
			if err := c.messenger.EditMessageText(ctx, chatID, q.Message.MessageID, msgs.generating, nil); err != nil {
				c.logger.Error().Err(err).Int64("chat_id", chatID).Msg("edit to generating")
			}
		case errors.Is(err, domain.ErrIncompleteSelection):
			c.sendText(ctx, chatID, msgs.incomplete)
		case errors.Is(err, domain.ErrQuotaExceeded):
			c.sendText(ctx, chatID, fmt.Sprintf(msgs.quotaExceeded, c.dailyLimit))
		default:
			c.sendText(ctx, chatID, fmt.Sprintf(msgs.submitFailed, err.Error()))
		}

	default:
		c.answerCallback(ctx, q.ID, "")
	}
}

func (c *Coordinator) answerCallback(ctx context.Context, callbackID, text string) {
	if err := c.messenger.AnswerCallbackQuery(ctx, callbackID, text); err != nil {
		c.logger.Error().Err(err).Msg("answer callback")
	}
}

func (c *Coordinator) sendText(ctx context.Context, chatID int64, text string) {
	if _, err := c.messenger.SendMessage(ctx, chatID, text, nil); err != nil {
		c.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send message")
	}
}

func localeOf(from *telegram.User) string {
	if from == nil {
		return ""
	}
	return from.LanguageCode
}

func modelKeyboard() *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(domain.Models))
	for _, m := range domain.Models {
		rows = append(rows, []telegram.InlineKeyboardButton{{
			Text:         m.Name,
			CallbackData: callbackModelPrefix + m.ID,
		}})
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func durationKeyboard(msgs messages) *telegram.InlineKeyboardMarkup {
	row := make([]telegram.InlineKeyboardButton, 0, len(domain.Durations))
	for _, d := range domain.Durations {
		row = append(row, telegram.InlineKeyboardButton{
			Text:         fmt.Sprintf(msgs.durationLabel, d),
			CallbackData: callbackDurationPrefix + d,
		})
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{row}}
}
