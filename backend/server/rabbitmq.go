package server

import (
	"fmt"

	"reported/backend/rabbitmq"
	"reported/backend/server/config"

	"github.com/apex/log"
)

var submissionPublisher *rabbitmq.Publisher

func initPublisher(cfg *config.Config) error {
	if cfg.AMQPURL == "" {
		return fmt.Errorf("AMQP_URL is not set")
	}
	p, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
	if err != nil {
		return err
	}
	submissionPublisher = p
	log.Infof("Publishing submissions to exchange %s", cfg.AMQPExchange)
	return nil
}
