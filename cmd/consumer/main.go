package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"Snapora/internal/config"
	"Snapora/internal/service"
	"Snapora/internal/storage"
	"Snapora/pkg/logger"
	"Snapora/pkg/oss"
	"Snapora/pkg/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
)

// 消费者进程：从清理队列里取消息，删除对象存储里已经没有记录引用的文件
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env文件未加载，使用环境变量")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	minioClient, err := oss.Client(ctx, oss.Options{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		UseSSL:    cfg.MinIO.UseSSL,
		Bucket:    cfg.MinIO.Bucket,
	})
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到MinIO: %v", err)
	}
	defer oss.Close()
	blobs := storage.NewMinioStore(minioClient, cfg.MinIO.Bucket, cfg.MinIO.URLExpiry)

	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()
	if err := rabbitmq.DeclareQueue(rabbitMQConn, service.QueueBlobCleanup); err != nil {
		logger.Log.Fatalf("声明队列失败: %v", err)
	}

	consumeBlobCleanup(ctx, rabbitMQConn, blobs)
}

// 清理消费者：1、建立channel并注册消费者 2、逐条处理消息 3、根据处理结果 Ack/Nack
func consumeBlobCleanup(ctx context.Context, conn *amqp.Connection, blobs storage.BlobStore) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()
	// 一次只拿少量消息，删除失败重新入队时不会堆积在本进程
	if err := ch.Qos(8, 0, false); err != nil {
		logger.Log.Fatalf("设置Qos失败: %v", err)
	}

	msgs, err := ch.Consume(
		service.QueueBlobCleanup, // queue
		"",                       // consumer
		false,                    // auto-ack，处理完再手动确认
		false,                    // exclusive
		false,                    // no-local
		false,                    // no-wait
		nil,                      // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册清理消费者: %v", err)
	}

	logger.Log.Info(" [*] 等待清理消息中. 按 CTRL+C 退出")
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("消费者退出")
			return
		case d, ok := <-msgs:
			if !ok {
				logger.Log.Warn("消息通道已关闭，消费者退出")
				return
			}
			logCtx := logger.Log.WithField("message_id", d.MessageId).WithField("redelivered", d.Redelivered)
			switch service.ProcessBlobCleanup(ctx, blobs, d.Body) {
			case service.CleanupDone:
				_ = d.Ack(false)
			case service.CleanupDrop:
				logCtx.Warn("无法解析的清理消息，直接丢弃")
				_ = d.Nack(false, false)
			case service.CleanupRetry:
				logCtx.Warn("清理未完成，消息重新入队")
				_ = d.Nack(false, true)
			}
		}
	}
}
