package methods

import (
	"bytes"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func GbkToUtf8(s string) string {
	gbkDecoder := simplifiedchinese.GBK.NewDecoder()
	utf8String, _, err := transform.String(gbkDecoder, s)
	if err != nil {
		// 如果解码失败，打印错误，然后返回原始字符串
		return s
	}
	return utf8String
}

func Utf8ToGbk(input string) []byte {
	gbkEncoder := simplifiedchinese.GBK.NewEncoder()
	var output bytes.Buffer
	writer := transform.NewWriter(&output, gbkEncoder)

	if _, err := writer.Write([]byte(input)); err != nil {
		return nil
	}
	if err := writer.Close(); err != nil {
		return nil
	}

	return output.Bytes()
}
