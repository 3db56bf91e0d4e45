// Command hashgen 生成初始管理员账号的密码哈希和插入语句
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	employeeID := flag.String("id", "ADMIN-001", "管理员工号")
	name := flag.String("name", "Administrator", "管理员姓名")
	email := flag.String("email", "admin@example.com", "登录邮箱")
	password := flag.String("password", "", "登录密码 (必填)")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "usage: hashgen -password <password> [-id ADMIN-001] [-email admin@example.com]")
		os.Exit(2)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	fmt.Printf("Hashed Password: %s\n\n", string(hashedPassword))
	fmt.Printf("INSERT INTO employees (employee_id, full_name, email, password_hash, role, rank, base_salary, work_days, account_status, created_at, updated_at)\n")
	fmt.Printf("VALUES ('%s', '%s', '%s', '%s', 'Admin', 'Administrator', 0, '1,2,3,4,5', 'Approved', strftime('%%Y-%%m-%%d %%H:%%M:%%S', 'now'), strftime('%%Y-%%m-%%d %%H:%%M:%%S', 'now'));\n",
		*employeeID, *name, *email, string(hashedPassword))
}
