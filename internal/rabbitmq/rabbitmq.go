package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

type MQConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Connect(url string) (*MQConn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &MQConn{
		conn: conn,
		ch: ch,
	}, nil
}

func (c *MQConn) Publish(queue string, body []byte) error {
	q, err := c.ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return err
	}

	return c.ch.Publish("", q.Name, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body: body,
	})
}

func (c *MQConn) Close() error {
	if err := c.ch.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}
