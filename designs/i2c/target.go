// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package i2c

// A Transaction is a transaction decoded from the bus, from START to STOP.
//
type Transaction struct {
	Addr   uint8
	Read   bool
	Data   []byte // bytes after the address byte, acknowledged ones only
	Nacked bool
}

// A Target is a bus monitor and a target model that acknowledges every byte of
// transactions sent to its address.
//
// If NackAfter is greater than 0, the target only acknowledges the first
// NackAfter data bytes of a transaction and NACKs the next one.
//
// It is fed with the SCL and SDA levels sampled once per clock cycle and
// returns the level it drives on SDA.
//
type Target struct {
	Addr         uint8
	NackAfter    int
	Transactions []Transaction

	prevSCL, prevSDA bool
	active           bool
	tx               Transaction
	cur              uint8
	nbits, nbytes    int
	ack              bool // acknowledge the current transaction
	drive            bool // pulling SDA low
	ackNext          bool // pull SDA low on the next SCL falling edge
	releaseNext      bool // release SDA on the next SCL falling edge
}

// NewTarget returns a target answering to addr.
func NewTarget(addr uint8) *Target {
	return &Target{Addr: addr, prevSCL: true, prevSDA: true}
}

// Sample decodes the bus state and returns the target's SDA drive: false when
// pulling the line low.
//
func (t *Target) Sample(scl, sda bool) bool {
	switch {
	case t.prevSCL && scl && t.prevSDA && !sda: // START
		if t.active {
			t.end()
		}
		t.active = true
		t.tx = Transaction{}
		t.cur, t.nbits, t.nbytes = 0, 0, 0
	case t.prevSCL && scl && !t.prevSDA && sda: // STOP
		if t.active {
			t.end()
		}
	case !t.active:
	case !t.prevSCL && scl:
		t.bit(sda)
	case t.prevSCL && !scl:
		if t.ackNext {
			t.drive, t.ackNext = true, false
		} else if t.releaseNext {
			t.drive, t.releaseNext = false, false
		}
	}
	t.prevSCL, t.prevSDA = scl, sda
	return !t.drive
}

func (t *Target) bit(sda bool) {
	if t.nbits == 8 {
		// acknowledge bit
		if sda {
			t.tx.Nacked = true
		}
		t.nbits = 0
		t.releaseNext = t.drive
		return
	}
	t.cur <<= 1
	if sda {
		t.cur |= 1
	}
	if t.nbits++; t.nbits < 8 {
		return
	}
	if t.nbytes == 0 {
		t.tx.Addr = t.cur >> 1
		t.tx.Read = t.cur&1 != 0
		t.ack = t.tx.Addr == t.Addr
	} else if t.ack {
		if t.NackAfter > 0 && len(t.tx.Data) >= t.NackAfter {
			t.ack = false
		} else {
			t.tx.Data = append(t.tx.Data, t.cur)
		}
	}
	t.nbytes++
	t.ackNext = t.ack
	t.cur = 0
}

func (t *Target) end() {
	t.Transactions = append(t.Transactions, t.tx)
	t.active = false
	t.drive, t.ackNext, t.releaseNext = false, false, false
}
