// Package main 启动应用程序
package main

import (
	"os"

	"github.com/yeisme/csvvault/pkg/cmd"
)

//	@title			csvvault API
//	@version		1.0.0
//	@description	上传 CSV 文件，保存元数据并推断每列的类型（text、number、datetime）.

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

//	@BasePath	/

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
