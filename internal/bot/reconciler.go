package bot

import (
	"context"
	"fmt"
	"time"

	"videobot/internal/domain"
	"videobot/internal/infra"
)

// reconcile polls the provider for one job until it reaches a terminal
// status or the deadline passes. The single select loop ties the poll
// source and the deadline together, so exactly one of completion
// notification, failure notification, or silent abandonment happens, and
// no status call is issued after the loop exits.
func (c *Coordinator) reconcile(ctx context.Context, chatID int64, recordID, jobID, locale string) {
	ctx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	msgs := messagesFor(locale)
	log := c.logger.With().Str("job_id", jobID).Int64("chat_id", chatID).Logger()

	for {
		select {
		case <-ctx.Done():
			// Abandoned without notifying the user; the remote job may
			// still finish on its own.
			log.Warn().Dur("timeout", c.pollTimeout).Msg("reconciliation deadline reached")
			return
		case <-ticker.C:
			status, err := c.gateway.FetchStatus(ctx, jobID)
			if err != nil {
				// Transient; the next tick retries.
				log.Debug().Err(err).Msg("status poll failed")
				continue
			}
			switch status.Status {
			case domain.JobStatusCompleted:
				if status.VideoURL == "" {
					log.Debug().Msg("completed status missing video url")
					continue
				}
				c.recordOutcome(ctx, recordID, domain.JobStatusCompleted, log)
				if _, err := c.messenger.SendMessage(ctx, chatID, msgs.videoDone, nil); err != nil {
					log.Error().Err(err).Msg("send completion message")
				}
				if err := c.messenger.SendVideo(ctx, chatID, status.VideoURL, msgs.videoCaption); err != nil {
					log.Error().Err(err).Msg("send video")
				}
				log.Info().Msg("job completed")
				return
			case domain.JobStatusFailed:
				reason := status.Error
				if reason == "" {
					reason = msgs.genericFailure
				}
				c.recordOutcome(ctx, recordID, domain.JobStatusFailed, log)
				if _, err := c.messenger.SendMessage(ctx, chatID, fmt.Sprintf(msgs.generateFailed, reason), nil); err != nil {
					log.Error().Err(err).Msg("send failure message")
				}
				log.Info().Str("reason", reason).Msg("job failed")
				return
			default:
				// pending, processing, or anything unrecognized: keep polling.
			}
		}
	}
}

func (c *Coordinator) recordOutcome(ctx context.Context, recordID string, status domain.JobStatus, log infra.Logger) {
	if err := c.jobs.UpdateStatus(ctx, recordID, status); err != nil {
		log.Error().Err(err).Str("status", string(status)).Msg("persist job status")
	}
}
