package repository

import (
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	// MySQL 的 "Duplicate entry" 错误号
	mysqlDuplicateEntry = 1062
	// InnoDB 检测到死锁，回滚了当前事务
	mysqlDeadlock = 1213
)

// IsDuplicateKey 判断错误的"根"是不是唯一索引冲突
func IsDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// IsDeadlock 两个事务对同一个不存在的键加间隙锁后都去插入，InnoDB 会回滚其中一个
func IsDeadlock(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDeadlock
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
