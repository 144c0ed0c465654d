package telegram

import (
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fplwatch/pkg/logger"
)

func TestBot_HandlerRegistrationIsConcurrencySafe(t *testing.T) {
	b := &Bot{log: logger.Get()}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			b.SetMessageHandler(func(tgbotapi.Update) {})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			b.handleUpdate(tgbotapi.Update{})
		}
	}()

	wg.Wait()
}
