package eventpubsub

import (
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

// Bus is a topic based publish/subscribe bus. Subscribers run asynchronously;
// Wait blocks until every delivered event has been handled.
type Bus struct {
	bus EventBus.Bus
}

func New() *Bus {
	return &Bus{bus: EventBus.New()}
}

func (b *Bus) Publish(topic string, event interface{}) {
	b.bus.Publish(topic, event)
}

func (b *Bus) Subscribe(topic string, callbackFn interface{}) error {
	if err := b.bus.SubscribeAsync(topic, callbackFn, false); err != nil {
		return err
	}

	log.Infof("Subscribed to topic %s", topic)
	return nil
}

func (b *Bus) HasSubscribers(topic string) bool {
	return b.bus.HasCallback(topic)
}

func (b *Bus) Wait() {
	b.bus.WaitAsync()
}
