package kernel

// Context is a task's handle on the kernel. Each task gets its own.
type Context struct {
	k      *Kernel
	taskID TaskID
}

// TaskID returns the ID the kernel gave this task.
func (c *Context) TaskID() TaskID { return c.taskID }

// RecvChan returns the mailbox behind a receive capability.
func (c *Context) RecvChan(epCap Capability) (<-chan Message, bool) {
	if !epCap.valid() || !epCap.canRecv() {
		return nil, false
	}
	ch := c.k.endpointChan(epCap.ep)
	if ch == nil {
		return nil, false
	}
	return ch, true
}

// Recv blocks until a message arrives on epCap.
func (c *Context) Recv(epCap Capability) (Message, bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	msg, ok := <-ch
	return msg, ok
}

// TryRecv returns a waiting message, if any.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	select {
	case msg, ok := <-ch:
		return msg, ok
	default:
		return Message{}, false
	}
}

// SendCapResult sends from the endpoint behind fromCap, so the receiver sees it in
// Message.From. xfer, when valid, travels in Message.Cap.
func (c *Context) SendCapResult(fromCap, toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	if !fromCap.valid() {
		return SendErrInvalidFromCap
	}
	if !fromCap.canSend() {
		return SendErrFromNoSendRight
	}
	if res := checkTo(toCap); res != SendOK {
		return res
	}
	return c.k.send(fromCap.ep, toCap.ep, kind, payload, xfer)
}

// SendToCapResult sends an anonymous message (Message.From is 0).
func (c *Context) SendToCapResult(toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	if res := checkTo(toCap); res != SendOK {
		return res
	}
	return c.k.send(0, toCap.ep, kind, payload, xfer)
}

// SendToCapRetry is SendToCapResult that waits one tick and tries again while the
// receiver's queue is full, at most limit times.
func (c *Context) SendToCapRetry(toCap Capability, kind uint16, payload []byte, xfer Capability, limit int) SendResult {
	res := c.SendToCapResult(toCap, kind, payload, xfer)
	for i := 0; i < limit && res == SendErrQueueFull; i++ {
		c.BlockOnTick()
		res = c.SendToCapResult(toCap, kind, payload, xfer)
	}
	return res
}

func checkTo(toCap Capability) SendResult {
	switch {
	case !toCap.valid():
		return SendErrInvalidToCap
	case !toCap.canSend():
		return SendErrToNoSendRight
	default:
		return SendOK
	}
}

// NewEndpoint allocates an endpoint and returns a capability with the given rights.
func (c *Context) NewEndpoint(rights Rights) Capability {
	if c.k == nil {
		return Capability{}
	}
	return c.k.NewEndpoint(rights)
}

// AddTask starts another task on the same kernel.
func (c *Context) AddTask(t Task) TaskID {
	if c.k == nil {
		return 0
	}
	return c.k.AddTask(t)
}

// NowTick returns the current kernel tick.
func (c *Context) NowTick() uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.nowTick()
}

// WaitTick blocks until the tick passes after and returns the new value.
func (c *Context) WaitTick(after uint64) uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.waitTick(after)
}

// BlockOnTick blocks until the next tick.
func (c *Context) BlockOnTick() {
	if c.k == nil {
		return
	}
	c.k.waitTick(c.k.nowTick())
}
