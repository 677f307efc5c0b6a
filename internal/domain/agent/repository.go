package agent

import "context"

type Repository interface {
	Save(ctx context.Context, agent *Agent) error
	Update(ctx context.Context, agent *Agent) error
	Delete(ctx context.Context, agentID uint) error
	GetByID(ctx context.Context, agentID uint) (*Agent, error)
	GetBySlug(ctx context.Context, slug string) (*Agent, error)
	List(ctx context.Context, enabledOnly bool) ([]*Agent, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
