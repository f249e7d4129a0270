// Package room runs a single game table and fans its state out to connected clients
package room

import (
	"context"
	"sync"

	"blackjack-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
)

// Dealer owns the game
// Every call into the game happens on the run loop, so the game itself needs no locking.
type Dealer struct {
	logger      logrus.FieldLogger
	game        playable.Playable
	clients     map[*Client]bool
	lock        sync.RWMutex
	logMessages []*playable.LogMessage

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(logger logrus.FieldLogger, game playable.Playable) *Dealer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Dealer{
		logger:        logger.WithField("game", game.Name()),
		game:          game,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift stops the run loop
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	logChan := d.game.LogChan()

	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendClientState()
			case stateGameEvent:
				d.sendGameData()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case messages := <-logChan:
			d.addLogMessages(messages)
			d.broadcast(&playable.Response{
				Key:  "logs",
				Data: messages,
			})
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// run queues fn on the run loop and waits for it to finish
func (d *Dealer) run(ctx context.Context, fn func()) error {
	done := make(chan bool)
	select {
	case d.execInRunLoop <- func() {
		fn()
		close(done)
	}:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		d.sendGameDataTo(client)
		if len(d.logMessages) > 0 {
			client.Send(&playable.Response{
				Key:  "logs",
				Data: d.logMessages,
			})
		}
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	d.execInRunLoop <- func() {
		response, err := d.perform(msg)
		if err != nil {
			d.logger.WithError(err).WithField("client", c.String()).Info("could not perform action")
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(response)
	}
}

// Exec performs the message on the run loop and returns the game's response
// Connected clients receive the new state if it changed.
func (d *Dealer) Exec(ctx context.Context, msg *playable.PayloadIn) (*playable.Response, error) {
	var response *playable.Response
	var actionErr error
	if err := d.run(ctx, func() {
		response, actionErr = d.perform(msg)
	}); err != nil {
		return nil, err
	}

	return response, actionErr
}

// State returns the game state as read on the run loop
func (d *Dealer) State(ctx context.Context) (*playable.Response, error) {
	var response *playable.Response
	var stateErr error
	if err := d.run(ctx, func() {
		response, stateErr = d.game.GetState()
	}); err != nil {
		return nil, err
	}

	return response, stateErr
}

// LogMessages returns the most recent log messages, oldest first
func (d *Dealer) LogMessages(ctx context.Context) ([]*playable.LogMessage, error) {
	var messages []*playable.LogMessage
	if err := d.run(ctx, func() {
		messages = make([]*playable.LogMessage, len(d.logMessages))
		copy(messages, d.logMessages)
	}); err != nil {
		return nil, err
	}

	return messages, nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) perform(msg *playable.PayloadIn) (*playable.Response, error) {
	response, updateState, err := d.game.Action(msg)
	if err != nil {
		return nil, err
	}

	if response == nil {
		response = playable.OK()
	}
	response.Context = msg.Context

	if updateState {
		d.sendGameData()
	}

	return response, nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	for _, client := range d.Clients() {
		d.sendGameDataTo(client)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameDataTo(client *Client) {
	data, err := d.game.GetState()
	if err != nil {
		d.logger.WithError(err).Error("could not get game state")
		return
	}

	if !client.Send(data) {
		d.logger.WithField("client", client.String()).Warn("client send buffer is full")
	}
}

func (d *Dealer) sendClientState() {
	clients := d.Clients()
	d.broadcastTo(clients, &playable.Response{
		Key:  "clientState",
		Data: &clientState{Connected: len(clients)},
	})
}

func (d *Dealer) broadcast(res *playable.Response) {
	d.broadcastTo(d.Clients(), res)
}

func (d *Dealer) broadcastTo(clients []*Client, res *playable.Response) {
	for _, client := range clients {
		if !client.Send(res) {
			d.logger.WithField("client", client.String()).Warn("client send buffer is full")
		}
	}
}
