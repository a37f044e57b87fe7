package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// エラーのフィールド名をjson/formタグの名前で返す
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(requestFieldName)
	}
}

func requestFieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// firstFieldError はbindingタグの検証に失敗した最初の項目を返す
func firstFieldError(err error) (validator.FieldError, bool) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return nil, false
	}
	return errs[0], true
}

// fieldErrorMessage は検証ルールごとの日本語メッセージを返す
func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%sは必須です", field)
	case "email":
		return "メールアドレスの形式が正しくありません"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%sは%s文字以上で入力してください", field, fe.Param())
		}
		return fmt.Sprintf("%sは%s以上で指定してください", field, fe.Param())
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%sは%s文字以内で入力してください", field, fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("%sは%s件までです", field, fe.Param())
		}
		return fmt.Sprintf("%sは%s以下で指定してください", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%sは次のいずれかを指定してください: %s", field, fe.Param())
	case "latitude":
		return "緯度は-90から90の間で指定してください"
	case "longitude":
		return "経度は-180から180の間で指定してください"
	case "url":
		return fmt.Sprintf("%sはURLで指定してください", field)
	}
	return fmt.Sprintf("%sが正しくありません (%s)", field, fe.Tag())
}
