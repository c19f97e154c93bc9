package lobby

import "time"

// handleHeartbeatTick terminates every connection that has not acknowledged
// a probe since the previous tick, then probes the rest. Besides explicit
// close, this is the only source of unsolicited disconnection.
func (l *Lobby) handleHeartbeatTick() {
	var dead []string
	for id, c := range l.conns {
		if !c.alive {
			dead = append(dead, id)
			continue
		}
		c.alive = false
		select {
		case c.outbox <- Outbound{Kind: OutboundProbe}:
		default:
			dead = append(dead, id)
		}
	}
	l.dropConns(dead)
}

func (l *Lobby) handleMarkAlive(connID string) {
	c, ok := l.conns[connID]
	if !ok {
		return
	}
	c.alive = true
	if c.key != "" {
		if p := l.byKey[c.key]; p != nil {
			p.LastSeen = time.Now()
		}
	}
}
