package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"phone_hunter/internal/domain/entity"
	"phone_hunter/pkg/logx"
)

const TaskAnalyzeListing = "listing:analyze"

const (
	taskMaxRetry = 2
	taskQueue    = "analyzer"
)

// Queue enqueues deals for background analysis.
type Queue struct {
	client *asynq.Client
}

func NewQueue(client *asynq.Client) *Queue {
	return &Queue{client: client}
}

func (q *Queue) Enqueue(ctx context.Context, deal entity.Deal) error {
	payload, err := json.Marshal(deal)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	task := asynq.NewTask(TaskAnalyzeListing, payload, asynq.MaxRetry(taskMaxRetry), asynq.Queue(taskQueue))

	if _, err = q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	return nil
}

type verdictSender interface {
	SendVerdict(ctx context.Context, deal entity.Deal, verdict entity.AIVerdict) error
}

// Handler processes analyze tasks: runs the deal through the LLM and forwards
// interesting verdicts to the operator.
type Handler struct {
	client *Client
	sender verdictSender
}

func NewHandler(client *Client, sender verdictSender) *Handler {
	return &Handler{
		client: client,
		sender: sender,
	}
}

func (h *Handler) Handle(ctx context.Context, task *asynq.Task) error {
	var deal entity.Deal
	if err := json.Unmarshal(task.Payload(), &deal); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	verdict, err := h.client.Analyze(ctx, deal)
	if err != nil {
		return fmt.Errorf("client.Analyze: %w", err)
	}

	logger(ctx).Info(
		"listing analyzed",
		slog.String("fingerprint", deal.Fingerprint.String()),
		slog.Bool("worth-buying", verdict.WorthBuying),
		slog.Bool("scam", verdict.IsScam),
		slog.Int("condition-score", verdict.ConditionScore),
	)

	// Silence on confirming verdicts: the operator already saw the deal.
	if verdict.WorthBuying && !verdict.IsScam {
		return nil
	}

	if err = h.sender.SendVerdict(ctx, deal, verdict); err != nil {
		logger(ctx).Error("failed to send verdict", logx.Error(err))
	}

	return nil
}
