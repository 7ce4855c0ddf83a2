package service

import (
	"context"
	"fmt"
	"reflect"

	"github.com/alexanderramin/teammap/internal/db"
	"github.com/alexanderramin/teammap/internal/orgchart"
	"github.com/alexanderramin/teammap/internal/repository"
)

// txRepos are the repositories bound to one transaction.
type txRepos struct {
	nodes     repository.NodeRepo
	positions repository.PositionRepo
	verticals repository.VerticalRepo
	settings  repository.SettingsRepo
}

func newTxRepos(tx db.DBTX) txRepos {
	return txRepos{
		nodes:     repository.NewSQLiteNodeRepo(tx),
		positions: repository.NewSQLitePositionRepo(tx),
		verticals: repository.NewSQLiteVerticalRepo(tx),
		settings:  repository.NewSQLiteSettingsRepo(tx),
	}
}

func (r txRepos) load(ctx context.Context) (orgchart.State, error) {
	var (
		st  orgchart.State
		err error
	)
	if st.Nodes, err = r.nodes.List(ctx); err != nil {
		return st, err
	}
	if st.Verticals, err = r.verticals.List(ctx); err != nil {
		return st, err
	}
	if st.Positions, err = r.positions.List(ctx); err != nil {
		return st, err
	}
	if st.Settings, err = r.settings.Get(ctx); err != nil {
		return st, err
	}
	return st, nil
}

// persist writes the rows that differ between before and after. Removed
// nodes go first so their positions cascade away, then nodes are upserted
// ahead of the positions that reference them.
func (r txRepos) persist(ctx context.Context, before, after orgchart.State) error {
	prevNodes := make(map[string]int, len(before.Nodes))
	for i, n := range before.Nodes {
		prevNodes[n.ID] = i
	}
	kept := make(map[string]bool, len(after.Nodes))
	for _, n := range after.Nodes {
		kept[n.ID] = true
	}
	for _, n := range before.Nodes {
		if !kept[n.ID] {
			if err := r.nodes.Delete(ctx, n.ID); err != nil {
				return err
			}
		}
	}
	for i, n := range after.Nodes {
		if j, ok := prevNodes[n.ID]; ok && j == i && reflect.DeepEqual(before.Nodes[j], n) {
			continue
		}
		if err := r.nodes.Upsert(ctx, n, i); err != nil {
			return err
		}
	}

	for id := range before.Positions {
		if _, ok := after.Positions[id]; !ok && kept[id] {
			if err := r.positions.Delete(ctx, id); err != nil {
				return err
			}
		}
	}
	for id, p := range after.Positions {
		if prev, ok := before.Positions[id]; ok && prev == p {
			continue
		}
		if err := r.positions.Upsert(ctx, id, p); err != nil {
			return err
		}
	}

	prevVerticals := make(map[string]int, len(before.Verticals))
	for i, v := range before.Verticals {
		prevVerticals[v.ID] = i
	}
	keptVerticals := make(map[string]bool, len(after.Verticals))
	for i, v := range after.Verticals {
		keptVerticals[v.ID] = true
		if j, ok := prevVerticals[v.ID]; ok && j == i && *before.Verticals[j] == *v {
			continue
		}
		if err := r.verticals.Upsert(ctx, v, i); err != nil {
			return err
		}
	}
	for _, v := range before.Verticals {
		if !keptVerticals[v.ID] {
			if err := r.verticals.Delete(ctx, v.ID); err != nil {
				return err
			}
		}
	}

	if !reflect.DeepEqual(before.Settings, after.Settings) {
		if err := r.settings.Save(ctx, after.Settings); err != nil {
			return err
		}
	}
	return nil
}

// chartAccess runs chart operations against the stored state, one
// transaction per call.
type chartAccess struct {
	uow db.UnitOfWork
}

// read loads the chart and hands it to fn. Nothing is written back.
func (a chartAccess) read(ctx context.Context, fn func(c *orgchart.Chart) error) error {
	return a.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st, err := newTxRepos(tx).load(ctx)
		if err != nil {
			return fmt.Errorf("loading chart: %w", err)
		}
		return fn(orgchart.New(st))
	})
}

// write loads the chart, applies fn and persists what changed. An error
// from fn rolls the transaction back.
func (a chartAccess) write(ctx context.Context, fn func(c *orgchart.Chart) error) error {
	return a.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := newTxRepos(tx)
		before, err := repos.load(ctx)
		if err != nil {
			return fmt.Errorf("loading chart: %w", err)
		}
		c := orgchart.New(before)
		if err := fn(c); err != nil {
			return err
		}
		if err := repos.persist(ctx, before, c.State()); err != nil {
			return fmt.Errorf("saving chart: %w", err)
		}
		return nil
	})
}
