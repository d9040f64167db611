// elCall: a high-throughput toolkit for nanopore read processing.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elcall/blob/master/LICENSE.txt>.

package nodes

import (
	"sync"
	"sync/atomic"

	"github.com/exascience/elcall/pipeline"
	"github.com/exascience/elcall/stats"
)

// PairingNode joins the template and complement reads of duplex
// pairs. It is given the pairs up front, as a map from template read
// id to complement read id. Reads that belong to a pair are held in a
// per-client cache until their partner arrives, and are then sent on
// together as a ReadPair. Reads that belong to no pair are passed on
// unchanged.
//
// A CacheFlush drops the cache of its client and is passed on. On
// Terminate, all caches are dropped unless the flush options ask to
// preserve them.
type PairingNode struct {
	*pipeline.NodeBase
	templates   map[string]string // complement id -> template id
	complements map[string]string // template id -> complement id

	mu     sync.Mutex
	caches map[int32]map[string]*pipeline.ReadPtr

	cached       atomic.Int64
	pairsEmitted atomic.Uint64
	readsDropped atomic.Uint64
	flushes      atomic.Uint64
}

// NewPairingNode starts a pairing node.
func NewPairingNode(pairs map[string]string, threads, queueSize int) *PairingNode {
	n := &PairingNode{
		NodeBase:    pipeline.NewNodeBase("PairingNode", queueSize),
		templates:   make(map[string]string, len(pairs)),
		complements: make(map[string]string, len(pairs)),
		caches:      make(map[int32]map[string]*pipeline.ReadPtr),
	}
	for template, complement := range pairs {
		n.complements[template] = complement
		n.templates[complement] = template
	}
	n.StartWorkers(threads, n.process)
	return n
}

func (n *PairingNode) process(msg pipeline.Message) {
	switch msg := msg.(type) {
	case *pipeline.ReadPtr:
		n.pair(msg)
	case pipeline.CacheFlush:
		n.flush(msg.ClientID)
		n.SendMessageToSinkSingle(msg)
	default:
		n.SendMessageToSinkSingle(msg)
	}
}

func (n *PairingNode) pair(ptr *pipeline.ReadPtr) {
	read := ptr.Read()
	id := read.ReadID
	partner, isTemplate := n.complements[id]
	if !isTemplate {
		var isComplement bool
		if partner, isComplement = n.templates[id]; !isComplement {
			n.SendMessageToSinkSingle(ptr.Take())
			return
		}
	}

	n.mu.Lock()
	cache := n.caches[read.ClientID]
	other, found := cache[partner]
	if found {
		delete(cache, partner)
		if len(cache) == 0 {
			delete(n.caches, read.ClientID)
		}
	} else {
		if cache == nil {
			cache = make(map[string]*pipeline.ReadPtr)
			n.caches[read.ClientID] = cache
		}
		cache[id] = ptr.Take()
	}
	if found {
		n.cached.Add(-1)
	} else {
		n.cached.Add(1)
	}
	n.mu.Unlock()
	if !found {
		return
	}

	template, complement := ptr, other
	if !isTemplate {
		template, complement = other, ptr
	}
	pair := pipeline.ReadPair{
		Read1:    template.View(),
		Read2:    complement.View(),
		Read1End: uint64(len(template.Read().Seq)),
		Read2End: uint64(len(complement.Read().Seq)),
	}
	n.pairsEmitted.Add(1)
	n.SendMessageToSinkSingle(pair)
}

func (n *PairingNode) flush(clientID int32) {
	n.mu.Lock()
	dropped := len(n.caches[clientID])
	delete(n.caches, clientID)
	n.cached.Add(-int64(dropped))
	n.mu.Unlock()
	n.readsDropped.Add(uint64(dropped))
	n.flushes.Add(1)
}

// Terminate implements pipeline.Node.
func (n *PairingNode) Terminate(opts pipeline.FlushOptions) {
	n.NodeBase.Terminate(opts)
	if opts.PreservePairingCaches {
		return
	}
	n.mu.Lock()
	dropped := 0
	for _, cache := range n.caches {
		dropped += len(cache)
	}
	n.caches = make(map[int32]map[string]*pipeline.ReadPtr)
	n.cached.Add(-int64(dropped))
	n.mu.Unlock()
	n.readsDropped.Add(uint64(dropped))
}

// CachedReads returns the number of reads waiting for their partner.
func (n *PairingNode) CachedReads() int {
	return int(n.cached.Load())
}

// SampleStats implements pipeline.Node.
func (n *PairingNode) SampleStats() stats.NamedStats {
	s := n.QueueStats()
	s["pairs_emitted"] = float64(n.pairsEmitted.Load())
	s["reads_cached"] = float64(n.CachedReads())
	s["reads_dropped"] = float64(n.readsDropped.Load())
	s["cache_flushes"] = float64(n.flushes.Load())
	return s
}
