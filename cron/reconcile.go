package cron

import (
	"context"
	"time"

	"gighaat/config"
	"gighaat/services/payment"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypePaymentReconcile = "payment:reconcile"

// InitReconcileWorker runs the background reconciler: a scheduler enqueues a
// reconcile task on the configured interval and a worker drains the queue,
// re-checking gateway outcomes for payment orders stuck in the created state.
func InitReconcileWorker(paymentSvc payment.PaymentService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReconcileDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePaymentReconcile, handleReconcileTask(paymentSvc))

	go func() {
		zap.L().Info("starting payment reconcile worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				zap.L().Error("reconcile worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					zap.L().Fatal("reconcile worker gave up after max attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runScheduler(redisOpts)
}

// runScheduler enqueues the periodic reconcile task.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	interval := config.AppConfig.ReconcileInterval
	if interval == "" {
		interval = "@every 2m"
	}

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register(interval, asynq.NewTask(TypePaymentReconcile, nil)); err != nil {
		zap.L().Error("failed to register reconcile schedule", zap.Error(err))
		return
	}
	if err := scheduler.Run(); err != nil {
		zap.L().Error("reconcile scheduler stopped", zap.Error(err))
	}
}

func handleReconcileTask(paymentSvc payment.PaymentService) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		if err := paymentSvc.ReconcileStaleOrders(ctx); err != nil {
			zap.L().Error("payment reconciliation failed", zap.Error(err))
			return err
		}
		return nil
	}
}
