// Package models содержит доменные структуры каталога датасетов.
// Имена полей сохраняют испанскую схему коллекции datasets.
package models

import "time"

// DatasetFile метаданные загруженного файла, прикреплённого к датасету.
type DatasetFile struct {
	Nombre   string `bson:"nombre" json:"nombre"`       // Сохранённое имя файла
	Ruta     string `bson:"ruta" json:"ruta"`           // Относительный путь в каталоге загрузок
	MimeType string `bson:"mime_type" json:"mime_type"` // Заявленный MIME-тип
	Size     int64  `bson:"size" json:"size"`           // Размер в байтах на момент загрузки
}

// Dataset документ каталога датасетов.
type Dataset struct {
	IDDataset          string        `bson:"id_dataset" json:"id_dataset"`
	IDUsuario          string        `bson:"id_usuario" json:"id_usuario"`
	Nombre             string        `bson:"nombre" json:"nombre"`
	Descripcion        string        `bson:"descripcion" json:"descripcion"`
	FechaInclusion     time.Time     `bson:"fecha_inclusion" json:"fecha_inclusion"`
	FechaActualizacion time.Time     `bson:"fecha_actualizacion" json:"fecha_actualizacion"`
	Estado             string        `bson:"estado" json:"estado"`
	Avatar             *DatasetFile  `bson:"avatar,omitempty" json:"avatar,omitempty"`
	FotoRepositorio    *DatasetFile  `bson:"foto_repositorio,omitempty" json:"foto_repositorio,omitempty"`
	Archivos           []DatasetFile `bson:"archivos,omitempty" json:"archivos,omitempty"`
	VideosGuia         []DatasetFile `bson:"videos_guia,omitempty" json:"videos_guia,omitempty"`
}

// DatasetUpdate частичное обновление полей датасета, nil — оставить как есть.
type DatasetUpdate struct {
	Nombre      *string
	Descripcion *string
	Estado      *string
}
