// Command createtoken verifies a username and password against the configured
// store and prints an access token. With -bootstrap it first creates the
// account as an administrator, which is how the first admin gets in.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/davomat/davomat-backend-go/internal/config"
	"github.com/davomat/davomat-backend-go/internal/domain/auth"
	"github.com/davomat/davomat-backend-go/internal/domain/department"
	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"github.com/davomat/davomat-backend-go/internal/pkg/jwt"
	"github.com/davomat/davomat-backend-go/internal/repository/mongodb"
	"github.com/davomat/davomat-backend-go/internal/repository/postgresql"
	authService "github.com/davomat/davomat-backend-go/internal/service/auth"
	userService "github.com/davomat/davomat-backend-go/internal/service/user"
)

func main() {
	username := flag.String("username", "", "account username")
	password := flag.String("password", "", "account password")
	bootstrap := flag.Bool("bootstrap", false, "create the account as admin before issuing the token")
	employeeCode := flag.String("employee-code", "ADMIN-1", "employee code for -bootstrap")
	flag.Parse()

	if err := run(*username, *password, *bootstrap, *employeeCode); err != nil {
		fmt.Fprintln(os.Stderr, "createtoken:", err)
		os.Exit(1)
	}
}

func run(username, password string, bootstrap bool, employeeCode string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		tx          database.Transactor
		users       user.UserRepository
		departments department.DepartmentRepository
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer db.Close()
		tx = postgresql.NewTransactor(db)
		users = postgresql.NewUserRepository(db)
		departments = postgresql.NewDepartmentRepository(db)
	default:
		db, err := database.NewMongoDB(cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return err
		}
		defer db.Close(context.Background())
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		tx = mongodb.NewTransactor(db, cfg.Mongo.Transactions)
		users = mongodb.NewUserRepository(db)
		departments = mongodb.NewDepartmentRepository(db)
	}

	if bootstrap {
		_, err := userService.NewUserService(tx, users, departments).Create(ctx, user.CreateUserRequest{
			Username:     username,
			Password:     password,
			FullName:     username,
			EmployeeCode: employeeCode,
			Role:         string(user.RoleAdmin),
		})
		if err != nil && !errors.Is(err, user.ErrUsernameExists) {
			return fmt.Errorf("create admin: %w", err)
		}
	}

	svc := authService.NewAuthService(users, jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration))
	token, err := svc.IssueToken(ctx, auth.IssueTokenRequest{Username: username, Password: password})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(token)
}
