package queue

// 主题命名：csv.<域>.<动作>.
const (
	TopicFileIngested = "csv.file.ingested" // 文件与列元数据已提交，原文件已落盘
	TopicFileArchived = "csv.file.archived" // 原文件已归档到对象存储
	TopicFileDeleted  = "csv.file.deleted"  // 文件记录与磁盘文件已删除
)

// Topics 返回所有已定义主题.
func Topics() []string {
	return []string{TopicFileIngested, TopicFileArchived, TopicFileDeleted}
}
