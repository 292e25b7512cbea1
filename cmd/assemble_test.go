package cmd

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T, dir string) (imgPath, wavPath string) {
	t.Helper()

	imgPath = filepath.Join(dir, "slide.png")
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	f, err := os.Create(imgPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	wavPath = filepath.Join(dir, "slide.wav")
	data := make([]byte, 1000*2)
	buf := make([]byte, 0, 44+len(data))
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+len(data)))
	buf = append(buf, "WAVEfmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1)
	buf = binary.LittleEndian.AppendUint16(buf, 1)
	buf = binary.LittleEndian.AppendUint32(buf, 1000)
	buf = binary.LittleEndian.AppendUint32(buf, 2000)
	buf = binary.LittleEndian.AppendUint16(buf, 2)
	buf = binary.LittleEndian.AppendUint16(buf, 16)
	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(data)))
	buf = append(buf, data...)
	require.NoError(t, os.WriteFile(wavPath, buf, 0o644))
	return imgPath, wavPath
}

func TestAssembleCommandReply(t *testing.T) {
	dir := t.TempDir()
	imgPath, wavPath := writeFixtures(t, dir)
	target := filepath.Join(dir, "out.webm")

	job := map[string]interface{}{
		"target": target,
		"slides": []map[string]interface{}{
			{"image": imgPath, "audio": wavPath, "seconds": 1.0},
		},
	}
	in, err := json.Marshal(job)
	require.NoError(t, err)

	cmd := NewAssembleCommand()
	var out bytes.Buffer
	cmd.SetIn(bytes.NewReader(in))
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	var reply struct {
		Error string `json:"error"`
		OK    *struct {
			Length uint64 `json:"length"`
		} `json:"ok"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &reply))
	assert.Empty(t, reply.Error)
	require.NotNil(t, reply.OK)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, reply.OK.Length, uint64(info.Size()))
}

func TestAssembleCommandReadsInputFile(t *testing.T) {
	dir := t.TempDir()
	imgPath, _ := writeFixtures(t, dir)
	target := filepath.Join(dir, "out.webm")

	jobPath := filepath.Join(dir, "job.json")
	job, err := json.Marshal(map[string]interface{}{
		"target": target,
		"slides": []map[string]interface{}{{"image": imgPath, "seconds": 0.5}},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(jobPath, job, 0o644))

	cmd := NewAssembleCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--input", jobPath})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), `"ok"`)
	_, err = os.Stat(target)
	assert.NoError(t, err)
}
