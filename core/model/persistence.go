package model

import (
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

// SaveModel はモデルをJSONファイルに保存する
//
// パラメータ:
//   - model: 保存する値（エクスポートされたフィールドが保存される）
//   - filename: 保存先のファイルパス
//
// 使用例:
//
//	fit, _ := linear.LeastSquares(X, y)
//	err := model.SaveModel(fit, "ls.json")
func SaveModel(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer file.Close()

	return SaveModelToWriter(model, file)
}

// LoadModel はJSONファイルからモデルを読み込む
//
// パラメータ:
//   - model: 読み込み先のポインタ
//   - filename: 読み込み元のファイルパス
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", filename)
	}
	defer file.Close()

	return LoadModelFromReader(model, file)
}

// SaveModelToWriter はモデルをio.WriterにJSONで書き出す
func SaveModelToWriter(model interface{}, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(model); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader はio.ReaderからJSONのモデルを読み込む
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := json.NewDecoder(r).Decode(model); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}
