package game

// The countdown is identified by a TimerID. A driver delivers one Tick per
// second carrying the id it was started with. Ticks for any other id are
// ignored.

func (c *Controller) startTimer() {
	c.timerSeq++
	c.timerID = TimerID(c.timerSeq)
	c.remaining = int(TimeBudget(c.session.Difficulty).Seconds())
}

func (c *Controller) stopTimer() {
	c.timerSeq++
	c.timerID = 0
	c.remaining = 0
}

// TimerID returns the running countdown, or zero when none is running.
func (c *Controller) TimerID() TimerID { return c.timerID }

// Remaining returns the seconds left on the running countdown.
func (c *Controller) Remaining() int { return c.remaining }

// Tick advances the countdown by one second. It returns false when id is
// not the running timer. Reaching zero skips the current question.
func (c *Controller) Tick(id TimerID) (TickResult, bool) {
	if id == 0 || id != c.timerID {
		return TickResult{}, false
	}

	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining > 0 {
		return TickResult{Remaining: c.remaining}, true
	}

	rec, err := c.AnswerQuestion(c.round.Cursor, Skip())
	if err != nil {
		return TickResult{}, false
	}
	return TickResult{Expired: true, Record: rec}, true
}
