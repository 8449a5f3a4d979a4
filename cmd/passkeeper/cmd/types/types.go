package types

import (
	"context"
	"errors"

	"passkeeper/cmd/passkeeper/cmd/prompt"
	"passkeeper/internal/app/client"
)

type contextKey string

const ClientAppKey contextKey = "app"

var ErrAppNotInitialized = errors.New("приложение не инициализировано")

// WithApp кладет приложение в контекст команды
func WithApp(ctx context.Context, app *client.App) context.Context {
	return context.WithValue(ctx, ClientAppKey, app)
}

// AppFromContext достает приложение, созданное в PersistentPreRunE
func AppFromContext(ctx context.Context) (*client.App, error) {
	if ctx == nil {
		return nil, ErrAppNotInitialized
	}
	app, ok := ctx.Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, ErrAppNotInitialized
	}
	return app, nil
}

// ReadCredentials собирает учетные данные для одной команды. Имя берется
// из флага --user, затем из DEFAULT_USER, затем запрашивается.
func ReadCredentials(app *client.App, p *prompt.Prompter, username string) (client.Credentials, error) {
	username, password, err := p.Credentials(username, app.Config().DefaultUser)
	if err != nil {
		return client.Credentials{}, err
	}
	return client.Credentials{Username: username, Password: password}, nil
}
