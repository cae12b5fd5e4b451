package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbrsolucoes/ponto-simulado/internal/models"
)

func TestStorage_Profiles(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	t.Run("criacao e busca por uid e email", func(t *testing.T) {
		uid, err := storage.CreateProfile(ctx, models.Profile{
			Email:        "aluno@example.com",
			PasswordHash: "hash",
			Role:         models.RoleVisitante,
		})
		require.NoError(t, err)
		require.NotEmpty(t, uid)

		byUID, err := storage.GetProfileByUID(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, "aluno@example.com", byUID.Email)
		assert.Equal(t, models.RoleVisitante, byUID.Role)
		assert.False(t, byUID.SubscriptionActive)

		byEmail, err := storage.GetProfileByEmail(ctx, "aluno@example.com")
		require.NoError(t, err)
		assert.Equal(t, uid, byEmail.UID)
	})

	t.Run("perfil inexistente devolve ErrProfileNotFound", func(t *testing.T) {
		_, err := storage.GetProfileByUID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrProfileNotFound)

		_, err = storage.GetProfileByEmail(ctx, "ninguem@example.com")
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("correcao de papel persiste", func(t *testing.T) {
		uid := factory.CreateProfile(t, "promovido@example.com", "hash", models.RoleVisitante, false)

		err := storage.UpdateProfileRole(ctx, uid, models.RoleAdmin)
		require.NoError(t, err)
		verify.VerifyProfileRole(t, uid, models.RoleAdmin)
	})

	t.Run("alteracao administrativa de acesso", func(t *testing.T) {
		uid := factory.CreateProfile(t, "assinante@example.com", "hash", models.RoleVisitante, false)

		count, err := storage.UpdateProfileAccess(ctx, uid, models.RoleAssinante, true)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		p, err := storage.GetProfileByUID(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAssinante, p.Role)
		assert.True(t, p.SubscriptionActive)
	})
}

func TestStorage_Questions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	options := []string{"a", "b", "c", "d", "e"}

	t.Run("criacao e listagem com busca", func(t *testing.T) {
		factory.CreateQuestion(t, "Sobre a Constituição Federal", "direito", "FGV", options, 2)
		factory.CreateQuestion(t, "Sobre regência verbal", "portugues", "Cebraspe", options, 0)

		all, err := storage.ListQuestions(ctx, "", 10, 0)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		filtered, err := storage.ListQuestions(ctx, "constituição", 10, 0)
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, options, filtered[0].Options)
	})

	t.Run("atualizacao e remocao devolvem contagens", func(t *testing.T) {
		id := factory.CreateQuestion(t, "Questão antiga", "direito", "FGV", options, 1)

		count, err := storage.UpdateQuestion(ctx, models.Question{
			Statement:     "Questão revisada",
			Options:       options,
			CorrectOption: 3,
			Category:      "direito",
			Banca:         "FGV",
			Active:        true,
		}, id)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		deleted, err := storage.RemoveQuestion(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)

		deleted, err = storage.RemoveQuestion(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 0, deleted)
	})
}

func TestStorage_Apostilas(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	t.Run("remocao devolve o nome do objeto", func(t *testing.T) {
		id := factory.CreateApostila(t, "Direito Constitucional", "direito",
			"http://storage/apostilas/obj.pdf", "obj.pdf")

		count, objectName, err := storage.RemoveApostila(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, "obj.pdf", objectName)
		verify.VerifyApostilaDeleted(t, id)
	})

	t.Run("remocao de id inexistente devolve zero sem erro", func(t *testing.T) {
		count, objectName, err := storage.RemoveApostila(ctx, 9999)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Empty(t, objectName)
	})
}

func TestStorage_ResetTokens(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	t.Run("token valido e consumido uma unica vez", func(t *testing.T) {
		uid := factory.CreateProfile(t, "reset@example.com", "hash", models.RoleVisitante, false)

		err := storage.CreateResetToken(ctx, uid, "hash-token-1", time.Now().Add(time.Hour))
		require.NoError(t, err)

		gotUID, err := storage.ConsumeResetToken(ctx, "hash-token-1")
		require.NoError(t, err)
		assert.Equal(t, uid, gotUID)
		verify.VerifyResetTokenUsed(t, "hash-token-1")

		_, err = storage.ConsumeResetToken(ctx, "hash-token-1")
		assert.ErrorIs(t, err, ErrResetTokenInvalid)
	})

	t.Run("token expirado e rejeitado", func(t *testing.T) {
		uid := factory.CreateProfile(t, "expirado@example.com", "hash", models.RoleVisitante, false)

		err := storage.CreateResetToken(ctx, uid, "hash-token-2", time.Now().Add(-time.Minute))
		require.NoError(t, err)

		_, err = storage.ConsumeResetToken(ctx, "hash-token-2")
		assert.ErrorIs(t, err, ErrResetTokenInvalid)
	})

	t.Run("token desconhecido e rejeitado", func(t *testing.T) {
		_, err := storage.ConsumeResetToken(ctx, "hash-inexistente")
		assert.ErrorIs(t, err, ErrResetTokenInvalid)
	})
}
