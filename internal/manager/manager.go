// Package manager tracks the configured streams and their reusable ctx pools.
package manager

import (
	"errors"
	"strconv"
	"sync"

	"github.com/eaon/rotating-buffer/internal/config"
)

type Manager struct {
	Streams   []*config.Stream
	UsedPorts map[int]struct{}
	CtxPools  map[string]*sync.Pool // reuse the stream.Ctx objects, one pool per stream
}

var M = &Manager{
	UsedPorts: make(map[int]struct{}),
	CtxPools:  make(map[string]*sync.Pool),
}

func Init(conf *config.Conf) {
	M.Streams = conf.Streams
}

// Register claims the stream's port and installs its ctx pool. Two streams
// cannot share a port.
func (m *Manager) Register(s *config.Stream, pool *sync.Pool) error {
	if _, ok := m.UsedPorts[s.Port]; ok {
		return errors.New(strconv.Itoa(s.Port) + " has been used")
	}
	m.UsedPorts[s.Port] = struct{}{}
	m.CtxPools[s.Name] = pool
	return nil
}
