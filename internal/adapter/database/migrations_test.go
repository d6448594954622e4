package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestSplitSQLCommands(t *testing.T) {
	sql := `-- cabeçalho
CREATE TABLE a (id INTEGER, nome TEXT DEFAULT 'x;y');
/* bloco; com ponto e vírgula */
INSERT INTO a (id) VALUES (1);
-- só comentário;
`
	cmds := splitSQLCommands(sql)
	require.Len(t, cmds, 2)
	assert.Contains(t, cmds[0], "DEFAULT 'x;y'")
	assert.Contains(t, cmds[1], "INSERT INTO a")
}

func TestMigrationManager(t *testing.T) {
	db := openMemoryDB(t)
	dir := t.TempDir()
	ctx := context.Background()

	content := "CREATE TABLE turmas (id INTEGER PRIMARY KEY, nome TEXT);\nINSERT INTO turmas (nome) VALUES ('Ballet');\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250101000000_turmas.sql"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notas.txt"), []byte("ignorado"), 0o644))

	m := NewMigrationManager(db, zaptest.NewLogger(t), dir)
	require.NoError(t, m.ApplyMigrations(ctx))
	// reaplicar não executa o arquivo de novo
	require.NoError(t, m.ApplyMigrations(ctx))

	var count int64
	require.NoError(t, db.Table("turmas").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	path, err := m.CreateMigration("Nova Coluna")
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "_nova_coluna.sql")

	status, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.True(t, status[0].Applied)
	assert.NotNil(t, status[0].AppliedAt)
	assert.Equal(t, "turmas", status[0].Name)
	assert.False(t, status[1].Applied)
}

func TestMigrationManager_MissingDirectory(t *testing.T) {
	db := openMemoryDB(t)
	m := NewMigrationManager(db, zaptest.NewLogger(t), filepath.Join(t.TempDir(), "nao-existe"))
	assert.NoError(t, m.ApplyMigrations(context.Background()))

	_, err := m.CreateMigration("  ")
	assert.Error(t, err)
}
