// Copyright 2019 Tad Lebeck
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package kube

import (
	"context"
)

// WaitForPhase returns a PostCreateFunc that polls until the object reaches the phase
func WaitForPhase(phase string) PostCreateFunc {
	return func(ctx context.Context, c *Controller) error {
		return c.WaitForPhase(ctx, phase)
	}
}

// WaitForPhase fetches the object every poll interval until status.phase equals the phase.
// It fails with TimedOut once the elapsed time reaches the poll timeout, even if the
// last fetch reached the phase. The budget is fixed; there is no backoff.
func (c *Controller) WaitForPhase(ctx context.Context, phase string) error {
	clock := c.cfg.clock()
	timeout, interval := c.cfg.pollTimeout(), c.cfg.pollInterval()
	start := clock.Now()
	for polls := 1; ; polls++ {
		if err := c.Get(ctx); err != nil {
			return err
		}
		current := c.model.Phase()
		elapsed := clock.Now().Sub(start)
		if elapsed >= timeout {
			c.cfg.warningf("%s still in phase %q after %s", c.resource(), current, elapsed)
			return newError(TimedOut, "wait", c.resource(), "timed out waiting on readiness of %s: [ %s ]", c.schema.Type.Kind, c.Name())
		}
		if current == phase {
			c.cfg.debugf("%s reached phase %s after %d polls", c.resource(), phase, polls)
			return nil
		}
		c.cfg.debugf("%s in phase %q, waiting for %s", c.resource(), current, phase)
		if err := clock.Sleep(ctx, interval); err != nil {
			return wrapError(TimedOut, "wait", c.resource(), err)
		}
	}
}
