package perf

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/jmoiron/sqlx"
)

// plannerToggles are the access paths switched off in "before" mode.
var plannerToggles = []string{
	"enable_indexscan",
	"enable_bitmapscan",
	"enable_indexonlyscan",
}

func modeValue(mode model.PlanMode) string {
	if mode == model.PlanModeBefore {
		return "off"
	}
	return "on"
}

type savedSetting struct {
	name  string
	value string
}

// PlannerScope holds planner settings applied to one dedicated connection
// and the values they replaced. Release must be called on every exit path.
type PlannerScope struct {
	conn  *sqlx.Conn
	saved []savedSetting
}

// ApplyPlannerMode captures the current toggles on conn and sets them for mode.
// On error everything applied so far is already restored.
func ApplyPlannerMode(ctx context.Context, conn *sqlx.Conn, mode model.PlanMode) (*PlannerScope, error) {
	s := &PlannerScope{conn: conn}
	value := modeValue(mode)

	prev := make([]savedSetting, 0, len(plannerToggles))
	for _, name := range plannerToggles {
		var cur string
		if err := conn.QueryRowxContext(ctx, conn.Rebind("SELECT current_setting(?)"), name).Scan(&cur); err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		prev = append(prev, savedSetting{name: name, value: cur})
	}

	for _, p := range prev {
		if err := setConfig(ctx, conn, p.name, value); err != nil {
			if rerr := s.Release(ctx); rerr != nil {
				err = errors.Join(err, rerr)
			}
			return nil, fmt.Errorf("apply %s=%s: %w", p.name, value, err)
		}
		s.saved = append(s.saved, p)
	}
	return s, nil
}

// Release restores the captured values in reverse order. It runs even when
// ctx is already cancelled. If a value cannot be restored the connection is
// discarded so the setting cannot reach another caller through the pool.
func (s *PlannerScope) Release(ctx context.Context) error {
	if s == nil {
		return nil
	}
	ctx = context.WithoutCancel(ctx)

	var errs []error
	for i := len(s.saved) - 1; i >= 0; i-- {
		p := s.saved[i]
		if err := setConfig(ctx, s.conn, p.name, p.value); err != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", p.name, err))
		}
	}
	s.saved = nil

	if len(errs) == 0 {
		return nil
	}
	_ = s.conn.Raw(func(any) error { return driver.ErrBadConn })
	return errors.Join(errs...)
}

func setConfig(ctx context.Context, conn *sqlx.Conn, name, value string) error {
	var applied string
	return conn.QueryRowxContext(ctx, conn.Rebind("SELECT set_config(?, ?, false)"), name, value).Scan(&applied)
}
