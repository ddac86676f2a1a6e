package main

import (
	"sync"

	"github.com/rs/zerolog/log"
	"golang.design/x/clipboard"
)

// clipboardService initializes the system clipboard on first use. Copy is a
// no-op where no clipboard is available.
type clipboardService struct {
	once  sync.Once
	ready bool
}

func newClipboardService() *clipboardService {
	return &clipboardService{}
}

func (c *clipboardService) init() {
	c.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			log.Warn().Err(err).Msg("clipboard unavailable")
			return
		}
		c.ready = true
	})
}

func (c *clipboardService) Copy(text string) bool {
	c.init()
	if !c.ready {
		return false
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return true
}
