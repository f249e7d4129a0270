package room

import (
	"blackjack-server/pkg/playable"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer

	id         string
	remoteAddr string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		send:       make(chan interface{}, 256),
		Close:      make(chan string),
		Conn:       conn,
		id:         uuid.New().String(),
		remoteAddr: remoteAddr,
	}
}

// Send send a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// ID returns the connection id
func (c *Client) ID() string {
	return c.id
}

// String returns a traceable identifier for the connection
func (c *Client) String() string {
	return c.id + "@" + c.remoteAddr
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
