package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMirroredProvider_FetchCatalog(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	remoteCatalog := &cards.Catalog{Records: testCatalog(), Expires: now.Add(12 * time.Hour)}
	mirrored := testCatalog()[:2]

	tests := []struct {
		name        string
		setup       func(remote *mock.MockCatalogProvider, mirror *mock.MockCatalogMirror)
		wantCards   int
		wantExpires time.Time
		wantErr     error
	}{
		{
			name: "remote ok updates mirror",
			setup: func(remote *mock.MockCatalogProvider, mirror *mock.MockCatalogMirror) {
				remote.EXPECT().FetchCatalog(gomock.Any()).Return(remoteCatalog, nil)
				mirror.EXPECT().SaveCatalog(gomock.Any(), remoteCatalog.Records).Return(nil)
			},
			wantCards:   len(remoteCatalog.Records),
			wantExpires: remoteCatalog.Expires,
		},
		{
			name: "mirror write failure is not fatal",
			setup: func(remote *mock.MockCatalogProvider, mirror *mock.MockCatalogMirror) {
				remote.EXPECT().FetchCatalog(gomock.Any()).Return(remoteCatalog, nil)
				mirror.EXPECT().SaveCatalog(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantCards:   len(remoteCatalog.Records),
			wantExpires: remoteCatalog.Expires,
		},
		{
			name: "remote down serves mirror",
			setup: func(remote *mock.MockCatalogProvider, mirror *mock.MockCatalogMirror) {
				remote.EXPECT().FetchCatalog(gomock.Any()).Return(nil, cards.ErrProviderUnavailable)
				mirror.EXPECT().LoadCatalog(gomock.Any()).Return(mirrored, nil)
			},
			wantCards:   len(mirrored),
			wantExpires: now.Add(time.Minute),
		},
		{
			name: "nil remote catalog serves mirror",
			setup: func(remote *mock.MockCatalogProvider, mirror *mock.MockCatalogMirror) {
				remote.EXPECT().FetchCatalog(gomock.Any()).Return(nil, nil)
				mirror.EXPECT().LoadCatalog(gomock.Any()).Return(mirrored, nil)
			},
			wantCards:   len(mirrored),
			wantExpires: now.Add(time.Minute),
		},
		{
			name: "remote and mirror down",
			setup: func(remote *mock.MockCatalogProvider, mirror *mock.MockCatalogMirror) {
				remote.EXPECT().FetchCatalog(gomock.Any()).Return(nil, errors.New("timeout"))
				mirror.EXPECT().LoadCatalog(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantErr: cards.ErrProviderUnavailable,
		},
		{
			name: "empty mirror",
			setup: func(remote *mock.MockCatalogProvider, mirror *mock.MockCatalogMirror) {
				remote.EXPECT().FetchCatalog(gomock.Any()).Return(nil, errors.New("timeout"))
				mirror.EXPECT().LoadCatalog(gomock.Any()).Return(nil, nil)
			},
			wantErr: cards.ErrProviderUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			remote := mock.NewMockCatalogProvider(ctrl)
			mirror := mock.NewMockCatalogMirror(ctrl)
			tt.setup(remote, mirror)

			p := NewMirroredProvider(remote, mirror, time.Minute)
			p.now = func() time.Time { return now }

			got, err := p.FetchCatalog(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got.Records, tt.wantCards)
			assert.Equal(t, tt.wantExpires, got.Expires)
		})
	}
}
