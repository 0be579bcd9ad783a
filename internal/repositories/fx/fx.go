package fx

import (
	"github.com/openclique/feedline/internal/repositories/posts"
	"github.com/openclique/feedline/internal/repositories/users"
	"go.uber.org/fx"
)

var Module = fx.Options(
	posts.Module,
	users.Module,
)
