// Package content 实现内容路由与校验：根据内容种类与公告子类型
// 决定记录归属的集合（数据表），并按种类裁剪不相关的字段。
// 集合在创建时即固定，编辑不会迁移记录。
package content

import (
	"fmt"
	"strings"
	"time"

	"classboard/internal/model"
)

// Kind 内容种类
type Kind string

const (
	KindNews         Kind = "news"
	KindAnnouncement Kind = "announcement"
)

// SubType 公告子类型，决定公告写入公开集合还是管理员集合
type SubType string

const (
	SubTypePublic SubType = "Public"
	SubTypeAdmin  SubType = "Admin"
)

// 集合标识，即对应的数据表名
const (
	CollectionNews               = "news"
	CollectionAnnouncements      = "announcements"
	CollectionAdminAnnouncements = "admin_announcements"
)

// Input 表单提交的原始字段集。日期为日历日期字符串（2006-01-02），
// ExpiryDate为空串表示未设置，不是错误。
type Input struct {
	Title            string `json:"title"`
	Content          string `json:"content"`
	ImageURL         string `json:"image_url"`
	Importance       string `json:"importance"`
	AnnouncementType string `json:"announcement_type"`
	IsPublished      bool   `json:"is_published"`
	PublishDate      string `json:"publish_date"`
	ExpiryDate       string `json:"expiry_date"`
}

// ValidationError 字段级校验错误，在任何远程写入之前返回
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const dateLayout = "2006-01-02"

// ParseKind 解析内容种类
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindNews, KindAnnouncement:
		return Kind(s), nil
	}
	return "", fmt.Errorf("未知的内容种类: %q", s)
}

// ParseSubType 解析公告子类型
func ParseSubType(s string) (SubType, error) {
	switch SubType(s) {
	case SubTypePublic, SubTypeAdmin:
		return SubType(s), nil
	}
	return "", fmt.Errorf("未知的公告类型: %q", s)
}

// ParseContext 解析管理接口路径中的内容上下文。
// 管理员公告上下文默认子类型为Admin，其余公告上下文默认为Public。
func ParseContext(s string) (Kind, SubType, error) {
	switch s {
	case "news":
		return KindNews, "", nil
	case "announcements":
		return KindAnnouncement, SubTypePublic, nil
	case "admin-announcements", "adminannouncements":
		return KindAnnouncement, SubTypeAdmin, nil
	}
	return "", "", fmt.Errorf("未知的内容上下文: %q", s)
}

// Resolve 由（种类，子类型）确定目标集合。该映射是纯函数：
// 新闻忽略子类型，公告按子类型分流。
func Resolve(kind Kind, subType SubType) (string, error) {
	switch kind {
	case KindNews:
		return CollectionNews, nil
	case KindAnnouncement:
		switch subType {
		case SubTypeAdmin:
			return CollectionAdminAnnouncements, nil
		case SubTypePublic, "":
			// 未指定子类型的公告默认进入公开集合
			return CollectionAnnouncements, nil
		}
		return "", fmt.Errorf("未知的公告类型: %q", subType)
	}
	return "", fmt.Errorf("未知的内容种类: %q", kind)
}

// EffectiveSubType 计算创建时生效的子类型：表单显式提交的类型优先，
// 否则使用上下文默认值。
func EffectiveSubType(ctxDefault SubType, in Input) (SubType, error) {
	if in.AnnouncementType != "" {
		return ParseSubType(in.AnnouncementType)
	}
	if ctxDefault != "" {
		return ctxDefault, nil
	}
	return SubTypePublic, nil
}

// Validate 校验提交字段，校验失败时不发生任何写入
func Validate(collection string, in Input) error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Message: "标题不能为空"}
	}
	if strings.TrimSpace(in.Content) == "" {
		return &ValidationError{Field: "content", Message: "内容不能为空"}
	}
	if in.PublishDate == "" {
		return &ValidationError{Field: "publish_date", Message: "发布日期不能为空"}
	}
	if _, err := time.Parse(dateLayout, in.PublishDate); err != nil {
		return &ValidationError{Field: "publish_date", Message: "发布日期格式错误，应为YYYY-MM-DD"}
	}
	if in.ExpiryDate != "" {
		if _, err := time.Parse(dateLayout, in.ExpiryDate); err != nil {
			return &ValidationError{Field: "expiry_date", Message: "过期日期格式错误，应为YYYY-MM-DD"}
		}
	}
	if collection != CollectionNews && in.Importance != "" {
		switch in.Importance {
		case model.ImportanceLow, model.ImportanceMedium, model.ImportanceHigh:
		default:
			return &ValidationError{Field: "importance", Message: "重要程度必须为Low、Medium或High"}
		}
	}
	return nil
}

// Record 校验输入并按目标集合裁剪，产出可持久化的记录。
// 裁剪是单向的：新闻丢弃importance与announcement_type，
// 两类公告丢弃image_url，被裁掉的字段保持nil，不做空值回填。
func Record(collection string, in Input) (*model.Content, error) {
	if err := Validate(collection, in); err != nil {
		return nil, err
	}

	publishDate, _ := time.Parse(dateLayout, in.PublishDate)

	c := &model.Content{
		Title:       strings.TrimSpace(in.Title),
		Content:     in.Content,
		IsPublished: in.IsPublished,
		PublishDate: publishDate,
	}

	if in.ExpiryDate != "" {
		expiry, _ := time.Parse(dateLayout, in.ExpiryDate)
		c.ExpiryDate = &expiry
	}

	switch collection {
	case CollectionNews:
		if in.ImageURL != "" {
			u := in.ImageURL
			c.ImageURL = &u
		}
	case CollectionAnnouncements, CollectionAdminAnnouncements:
		imp := in.Importance
		if imp == "" {
			imp = model.ImportanceLow
		}
		c.Importance = &imp
	default:
		return nil, fmt.Errorf("未知的集合: %q", collection)
	}

	return c, nil
}
