package flow

import (
	"context"

	"velvet-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Controller drives the wizard. It holds the current step, the per-step
// drafts, and the step-level error, and runs each transition's remote
// effect through the manager and data service. A single submitting flag
// guards against double submission; it is advisory, not a lock.
type Controller struct {
	mgr  *Manager
	data DataAPI

	step       Step
	girlID     bson.ObjectID
	girlDraft  *models.OnboardingGirl
	entryDraft *models.OnboardingDataEntry

	submitting bool
	stepError  string
	onComplete func()
}

// NewController builds a controller on an initialized manager. onComplete
// is the external completion callback invoked when the flow finishes.
func NewController(mgr *Manager, data DataAPI, onComplete func()) *Controller {
	c := &Controller{
		mgr:        mgr,
		data:       data,
		step:       StepWelcome,
		onComplete: onComplete,
	}
	c.SyncSession()
	return c
}

// SyncSession adopts the session's step pointer; the remote pointer takes
// precedence over the local step whenever the session changes.
func (c *Controller) SyncSession() {
	status := c.mgr.Status()
	if status.CurrentStep >= int(StepWelcome) && status.CurrentStep <= int(StepEmailConversion) {
		c.step = Step(status.CurrentStep)
	}
	if !status.GirlID.IsZero() {
		c.girlID = status.GirlID
	}
}

func (c *Controller) Step() Step            { return c.step }
func (c *Controller) StepError() string     { return c.stepError }
func (c *Controller) Submitting() bool      { return c.submitting }
func (c *Controller) GirlID() bson.ObjectID { return c.girlID }

// SetGirlDraft stores the step-2 form data.
func (c *Controller) SetGirlDraft(girl *models.OnboardingGirl) { c.girlDraft = girl }

// SetEntryDraft stores the step-3 form data.
func (c *Controller) SetEntryDraft(entry *models.OnboardingDataEntry) { c.entryDraft = entry }

// Next runs the forward transition for the current step. On failure the
// step does not advance and the error is surfaced as step-local text.
func (c *Controller) Next(ctx context.Context) {
	c.dispatch(ctx, EventNext)
}

// Skip runs the skip transition (only meaningful at preview and email
// conversion).
func (c *Controller) Skip(ctx context.Context) {
	c.dispatch(ctx, EventSkip)
}

// Complete finishes the optional email-conversion step.
func (c *Controller) Complete(ctx context.Context) {
	c.dispatch(ctx, EventComplete)
}

// Back decrements the step by one and clears any step error. It is blocked
// below the first step and needs no remote call.
func (c *Controller) Back() {
	if c.submitting {
		return
	}
	c.stepError = ""
	if c.step > StepWelcome {
		c.step--
	}
}

func (c *Controller) dispatch(ctx context.Context, event Event) {
	if c.submitting {
		return
	}
	c.submitting = true
	defer func() { c.submitting = false }()
	c.stepError = ""

	next, effect := Transition(c.step, event)

	switch effect {
	case EffectNone:
		return

	case EffectAdvanceStep:
		if event == EventSkip {
			// skip's failure path is not observed
			c.mgr.UpdateStep(ctx, int(next))
			c.step = next
			return
		}
		if !c.mgr.UpdateStep(ctx, int(next)) {
			c.stepError = "failed to save progress"
			return
		}
		c.step = next

	case EffectSaveGirl:
		sess := c.mgr.Session()
		if sess == nil {
			c.stepError = ErrNoActiveSession.Error()
			return
		}
		if c.girlDraft == nil {
			c.stepError = "girl details are required"
			return
		}
		girl, err := c.data.SaveGirl(ctx, sess.UserID, sess.ID, c.girlDraft)
		if err != nil {
			c.stepError = err.Error()
			return
		}
		c.girlID = girl.ID
		c.mgr.SetGirlID(girl.ID)
		c.mgr.UpdateStep(ctx, int(next))
		c.step = next

	case EffectSaveDataEntry:
		sess := c.mgr.Session()
		if sess == nil {
			c.stepError = ErrNoActiveSession.Error()
			return
		}
		if c.girlID.IsZero() {
			c.stepError = "no girl captured for this session"
			return
		}
		if c.entryDraft == nil {
			c.stepError = "entry details are required"
			return
		}
		if _, err := c.data.SaveDataEntry(ctx, sess.UserID, sess.ID, c.girlID, c.entryDraft); err != nil {
			c.stepError = err.Error()
			return
		}
		c.mgr.UpdateStep(ctx, int(next))
		c.step = next

	case EffectFinalize:
		res, err := c.mgr.CompleteOnboarding(ctx)
		if err != nil {
			c.stepError = err.Error()
			return
		}
		if !res.Success {
			c.stepError = res.Error
			return
		}
		if c.onComplete != nil {
			c.onComplete()
		}

	case EffectFinish:
		if c.onComplete != nil {
			c.onComplete()
		}
	}
}
