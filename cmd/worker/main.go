package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiebiao/storefront/internal/infrastructure/config"
	"github.com/xiebiao/storefront/pkg/mq"
)

// 订单事件消费者
// 订阅order.*事件做通知/对账等慢操作,与API进程分开部署。
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.MQ.Enabled {
		log.Fatal("mq is disabled in config, nothing to consume")
	}

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, "topic", "order.events", []string{"order.*"})
	if err != nil {
		log.Fatalf("connect mq: %v", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down")
		cancel()
	}()

	err = consumer.Consume(ctx, func(body []byte) error {
		var event struct {
			OrderID     uint   `json:"orderId"`
			OrderNumber string `json:"orderNumber"`
			Status      string `json:"status"`
			Total       int64  `json:"total"`
		}
		if err := json.Unmarshal(body, &event); err != nil {
			// 消息格式坏了重试也没用,记日志后吞掉
			log.Printf("drop malformed event: %v", err)
			return nil
		}
		log.Printf("order event: %s status=%s total=%d", event.OrderNumber, event.Status, event.Total)
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("consume: %v", err)
	}
}
